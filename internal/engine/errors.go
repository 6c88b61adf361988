package engine

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v81/github"
)

// ConfigError reports a problem with flags, the token, rule options or the CI
// environment. The run stops before any write.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}

// APIError reports a failed GitHub API call. Op names the step that failed.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *APIError) Unwrap() error { return e.Err }

// Exit code contract:
// 0 = all rules passed, or the run is not for a pull request
// 1 = at least one rule failed
// 2 = a GitHub API or transport error aborted the run
// 3 = configuration error (nothing was fetched or written)
const (
	ExitOK          = 0
	ExitRuleFailure = 1
	ExitAPIError    = 2
	ExitConfigError = 3
)

func exitCodeFor(err error, failed bool) int {
	var cfgErr *ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case err != nil:
		return ExitAPIError
	case failed:
		return ExitRuleFailure
	default:
		return ExitOK
	}
}

// presentError renders err for stderr. Unless verbose, request URLs are
// dropped from GitHub API errors.
func presentError(err error, verbose bool) string {
	if err == nil {
		return "unknown error"
	}
	if verbose {
		return err.Error()
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}

	prefix := ""
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		prefix = apiErr.Op + ": "
	}

	// Prefer structured GitHub error types to avoid leaking full request URLs.
	var er *github.ErrorResponse
	if errors.As(err, &er) {
		msg := strings.TrimSpace(er.Message)
		if msg == "" {
			msg = "GitHub API request failed"
		}
		if er.Response != nil {
			return fmt.Sprintf("%sGitHub API request failed (%d %s): %s", prefix, er.Response.StatusCode, http.StatusText(er.Response.StatusCode), msg)
		}
		return fmt.Sprintf("%sGitHub API request failed: %s", prefix, msg)
	}

	// Transport failures carry the request URL in *url.Error.
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Sprintf("%s%s request failed: %v", prefix, ue.Op, ue.Err)
	}

	cause := err
	if apiErr != nil {
		cause = apiErr.Err
	}
	if scrubbed := scrubGitHubRequestFromErrorString(strings.TrimSpace(cause.Error())); scrubbed != "" {
		return prefix + scrubbed
	}
	return prefix + cause.Error()
}

func scrubGitHubRequestFromErrorString(s string) string {
	// Typical go-github error format:
	//   GET https://api.github.com/...: 403 Some message. [..]
	// Drop the leading "GET https://...: " part.
	for _, m := range []string{"GET ", "POST ", "PUT ", "PATCH ", "DELETE "} {
		if !strings.HasPrefix(s, m) {
			continue
		}
		if i := strings.Index(s, "://"); i >= 0 {
			if j := strings.Index(s[i:], ": "); j >= 0 {
				return strings.TrimSpace(s[i+j+2:])
			}
		}
		if j := strings.Index(s, ": "); j >= 0 {
			return strings.TrimSpace(s[j+2:])
		}
		break
	}
	return ""
}
