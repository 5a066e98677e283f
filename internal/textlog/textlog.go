package textlog

import (
	"bufio"
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	diagerrors "github.com/mbrocato/it-diagnostics-toolkit/internal/errors"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/models"
)

const (
	// errorCodeLen bounds the extracted system-log error code.
	errorCodeLen = 10

	errorToken = "ERROR"

	initialScanBuf = 64 * 1024
	maxScanBuf     = 4 * 1024 * 1024
)

// userTriggers are the substrings that mark a user-log line as a software
// conflict, matched case-insensitively.
var userTriggers = []string{"conflict", "error", "failed to load"}

// Scanner extracts issue records from line-oriented text logs.
type Scanner struct {
	logger zerolog.Logger
}

// New returns a Scanner that reports through the given logger.
func New(logger zerolog.Logger) *Scanner {
	return &Scanner{logger: logger}
}

// ScanUserLog reads the user log at path and emits one UserConflict record
// per line containing any conflict trigger. A line matching several triggers
// still yields a single record.
func (s *Scanner) ScanUserLog(ctx context.Context, path string) ([]models.Issue, error) {
	const op = "scan_user_log"

	issues := make([]models.Issue, 0)
	err := s.scanLines(ctx, op, path, func(line string) {
		lower := strings.ToLower(line)
		for _, trigger := range userTriggers {
			if strings.Contains(lower, trigger) {
				issues = append(issues, models.NewIssue(models.CategoryUserConflict, line))
				break
			}
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("path", path).Int("issues", len(issues)).Msg("user log scanned")
	return issues, nil
}

// ScanSystemLog reads the system log at path and emits one SystemError
// record per line containing the error token, carrying the short error code
// that follows it.
func (s *Scanner) ScanSystemLog(ctx context.Context, path string) ([]models.Issue, error) {
	const op = "scan_system_log"

	issues := make([]models.Issue, 0)
	err := s.scanLines(ctx, op, path, func(line string) {
		if !strings.Contains(strings.ToUpper(line), errorToken) {
			return
		}
		code, ok := codeAfterToken(line, errorToken, errorCodeLen)
		if !ok {
			// The token only matched case-insensitively; there is no
			// literal "ERROR" to slice a code from.
			return
		}
		issues = append(issues, models.NewIssue(models.CategorySystemError, line).WithCode(code))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("path", path).Int("errors", len(issues)).Msg("system log scanned")
	return issues, nil
}

// scanLines streams the file at path line by line through fn. It fails with
// NotFound when the file is absent and DecodingError when a line is not
// valid UTF-8; no partial result survives either failure.
func (s *Scanner) scanLines(ctx context.Context, op, path string, fn func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return diagerrors.WrapNotFound(op, path, err)
		}
		return diagerrors.WrapIO(op, path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, initialScanBuf), maxScanBuf)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return diagerrors.WrapDecoding(op, path, diagerrors.ErrDecoding)
		}
		fn(line)
	}
	if err := scanner.Err(); err != nil {
		return diagerrors.WrapIO(op, path, err)
	}
	return nil
}

// codeAfterToken returns the bounded error code following the first
// case-sensitive occurrence of token in line: the remainder is trimmed of
// surrounding whitespace and capped at maxLen codepoints. Token not found
// reports ok=false; token at end of line reports an empty code with ok=true.
func codeAfterToken(line, token string, maxLen int) (code string, ok bool) {
	idx := strings.Index(line, token)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimSpace(line[idx+len(token):])
	runes := []rune(rest)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes), true
}
