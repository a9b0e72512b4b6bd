// Utilities for parsing saved cURL commands into request headers.
//
// YouTube intermittently rejects anonymous clients; operators can copy a
// browser request as cURL and point converter.headers_path at it so every
// yt-dlp call replays the same headers and cookies.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// RequestHeaders represents parsed headers and cookies from a cURL command.
type RequestHeaders struct {
	Headers map[string]string
	Cookie  string
}

var (
	headerFlagRe = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	cookieFlagRe = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*RequestHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// The Cookie header, whether it comes from -H or -b, is kept separate from
// the regular headers.
func ParseCurlCommand(data []byte) (*RequestHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	for _, match := range headerFlagRe.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		key, value, found := strings.Cut(headerLine, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if cookie == "" {
				cookie = value
			}
			continue
		}
		headers[key] = value
	}

	if m := cookieFlagRe.FindStringSubmatch(curlCmd); len(m) > 1 {
		if m[1] != "" {
			cookie = m[1]
		} else if m[2] != "" {
			cookie = m[2]
		}
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &RequestHeaders{Headers: headers, Cookie: cookie}, nil
}

// ToYtdlpArgs renders the parsed headers as yt-dlp --add-header arguments,
// sorted by header name so argument lists are stable.
func (r *RequestHeaders) ToYtdlpArgs() []string {
	keys := make([]string, 0, len(r.Headers))
	for key := range r.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var args []string
	for _, key := range keys {
		args = append(args, "--add-header", fmt.Sprintf("%s:%s", key, r.Headers[key]))
	}
	if r.Cookie != "" {
		args = append(args, "--add-header", fmt.Sprintf("Cookie:%s", r.Cookie))
	}
	return args
}
