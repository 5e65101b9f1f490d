// Package lexical implements the text-relevance primitives of the search
// pipeline: whitespace tokenization, substring/prefix term scoring, and a
// normalized edit-distance similarity used as a fuzzy fallback.
//
// Scoring weights are fixed:
//
//	name substring   +10
//	name prefix      +5 (on top of the substring score)
//	description      +3
//	fuzzy fallback   similarity × 2, when similarity > 0.6
//
// A record's score is the sum of its per-token term scores; zero means the
// record does not match at all.
package lexical
