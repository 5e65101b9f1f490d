package testutil

import (
	"fmt"
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// baseTime anchors all generated timestamps so records compare stably
// across test runs within one process.
var baseTime = time.Now().UTC().Truncate(time.Hour)

// names cycles through plausible project names.
var names = []string{
	"alpha-api", "beta-api", "gamma-service", "delta-worker", "epsilon-ui",
	"zeta-gateway", "eta-proxy", "theta-cli", "iota-docs", "kappa-infra",
}

// Record returns one deterministic record. Counters and timestamps derive
// from the id, so the same id always yields the same record.
func Record(id, instanceID int64, name string) model.Record {
	vis := []model.Visibility{
		model.VisibilityPublic, model.VisibilityPrivate, model.VisibilityInternal,
	}[id%3]
	return model.Record{
		ID:             id,
		InstanceID:     instanceID,
		Name:           name,
		Description:    fmt.Sprintf("project %s on instance %d", name, instanceID),
		Visibility:     vis,
		BranchCount:    int(id%5) + 1,
		StarCount:      int(id * 3 % 50),
		ForkCount:      int(id % 7),
		DefaultBranch:  "main",
		CreatedAt:      baseTime.AddDate(0, 0, -int(id%365)),
		UpdatedAt:      baseTime.Add(-time.Duration(id) * time.Hour),
		LastActivityAt: baseTime.Add(-time.Duration(id) * time.Hour),
		WebURL:         fmt.Sprintf("https://git.example.com/%s", name),
		SSHURL:         fmt.Sprintf("git@git.example.com:%s.git", name),
		HTTPURL:        fmt.Sprintf("https://git.example.com/%s.git", name),
	}
}

// Records returns n deterministic records with ids 1..n on one instance,
// cycling through the built-in name list.
func Records(n int, instanceID int64) []model.Record {
	recs := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		name := fmt.Sprintf("%s-%d", names[i%len(names)], id)
		recs = append(recs, Record(id, instanceID, name))
	}
	return recs
}
