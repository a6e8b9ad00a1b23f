package provider

import (
	"fmt"
	"strings"
)

// ParseSpec splits a three-segment "owner/repository/ref" spec. A trailing
// ".git" on the repository segment is stripped. A two-segment spec is a
// common user mistake (the ref was forgotten), so the error suggests the
// spec with the default branch appended. Parse failures are permanent input
// errors and must not be retried.
func ParseSpec(spec string) (owner, repo, ref string, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 3 {
		msg := fmt.Sprintf("spec is not of the form \"owner/repo/ref\", provided: %q", spec)
		if len(parts) == 2 {
			msg += fmt.Sprintf(". Did you mean %q?", spec+"/master")
		}
		return "", "", "", fmt.Errorf("%s", msg)
	}

	owner, repo, ref = parts[0], parts[1], parts[2]
	repo = strings.TrimSuffix(repo, ".git")
	return owner, repo, ref, nil
}
