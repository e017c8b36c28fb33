package criteria

import (
	"github.com/viant/simos/service/dao"
)

// StatusParameter is the parameter name matched by FilterByStatus
const StatusParameter = "Status"

// FilterByStatus returns true when status satisfies every Status parameter;
// parameters with other names are ignored.
func FilterByStatus(status string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != StatusParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if status != actual {
				return false
			}
		case []string:
			matched := false
			for _, s := range actual {
				if status == s {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}
