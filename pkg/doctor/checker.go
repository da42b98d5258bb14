package doctor

import "sync"

// groupDefinitions defines the check groups in display order.
var groupDefinitions = []struct {
	ID          string
	Name        string
	Description string
	CheckIDs    []string
}{
	{
		ID:          GroupScript,
		Name:        "Script",
		Description: "Required to run generated scripts on this machine",
		CheckIDs:    []string{IDOSRelease, IDBash, IDSudo, IDDnf, IDFlatpak},
	},
	{
		ID:          GroupClipboard,
		Name:        "Clipboard",
		Description: "Optional, used by the interactive preview",
		CheckIDs:    []string{IDClipboard},
	},
}

// Checker runs checks.
type Checker struct {
	executor CommandExecutor
}

// NewChecker creates a new Checker with the real command executor.
func NewChecker() *Checker {
	return &Checker{executor: &RealExecutor{}}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec CommandExecutor) *Checker {
	return &Checker{executor: exec}
}

// CheckAll runs all checks concurrently and returns groups with results in
// display order.
func (c *Checker) CheckAll() []CheckGroup {
	result := make([]CheckGroup, len(groupDefinitions))
	var wg sync.WaitGroup

	for i, def := range groupDefinitions {
		wg.Add(1)
		go func(idx int, id string) {
			defer wg.Done()
			result[idx] = c.CheckGroup(id)
		}(i, def.ID)
	}

	wg.Wait()
	return result
}

// CheckGroup runs all checks for a specific group.
func (c *Checker) CheckGroup(groupID string) CheckGroup {
	for _, def := range groupDefinitions {
		if def.ID != groupID {
			continue
		}
		group := CheckGroup{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
		}
		for _, checkID := range def.CheckIDs {
			group.Checks = append(group.Checks, c.runCheck(checkID))
		}
		return group
	}
	return CheckGroup{ID: groupID, Name: "Unknown"}
}

// runCheck runs a specific check by ID.
func (c *Checker) runCheck(checkID string) Check {
	switch checkID {
	case IDOSRelease:
		return CheckOSRelease(c.executor)
	case IDBash:
		return CheckBash(c.executor)
	case IDSudo:
		return CheckSudo(c.executor)
	case IDDnf:
		return CheckDnf(c.executor)
	case IDFlatpak:
		return CheckFlatpak(c.executor)
	case IDClipboard:
		return CheckClipboard(c.executor)
	default:
		return Check{
			ID:      checkID,
			Name:    checkID,
			Status:  StatusError,
			Message: "unknown check",
		}
	}
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func GetSummary(groups []CheckGroup) Summary {
	var summary Summary

	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}

	return summary
}

// HasIssues returns true if any required check failed. The clipboard group
// is optional.
func HasIssues(groups []CheckGroup) bool {
	for _, group := range groups {
		if group.ID == GroupClipboard {
			continue
		}
		for _, check := range group.Checks {
			if check.Status == StatusMissing || check.Status == StatusError {
				return true
			}
		}
	}
	return false
}
