package bench

import (
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
)

// PoliciesToRun resolves a policy selector into the list of policies to
// benchmark. An empty selector or "all" yields every policy in run
// order; anything else must name a single policy.
func PoliciesToRun(selector string) ([]accumulate.Policy, error) {
	if selector == "" || selector == "all" {
		return accumulate.Policies(), nil
	}
	policy, err := accumulate.ParsePolicy(selector)
	if err != nil {
		return nil, err
	}
	return []accumulate.Policy{policy}, nil
}
