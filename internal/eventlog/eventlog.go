package eventlog

import (
	"context"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	diagerrors "github.com/mbrocato/it-diagnostics-toolkit/internal/errors"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/models"
)

const (
	crashMarker = "crash"

	eventPath   = "//Event"
	dataPath    = "EventData/Data"
	eventIDPath = "System/EventID"
)

// Parser extracts crash anomalies from XML event logs shaped like Windows
// event exports: Event elements carrying a System/EventID and an
// EventData/Data text field.
type Parser struct {
	logger zerolog.Logger
}

// New returns a Parser that reports through the given logger.
func New(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse reads the event document at path and emits one EventAnomaly record
// per Event whose data field mentions a crash. Events without a data field,
// or whose data does not mention a crash, are skipped. A matching event
// without an EventID is malformed input and fails the whole parse.
func (p *Parser) Parse(ctx context.Context, path string) ([]models.Issue, error) {
	const op = "parse_events"

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, diagerrors.WrapNotFound(op, path, err)
		}
		return nil, diagerrors.WrapIO(op, path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, diagerrors.WrapParse(op, path, err)
	}

	anomalies := make([]models.Issue, 0)
	for _, event := range doc.FindElements(eventPath) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data := event.FindElement(dataPath)
		if data == nil {
			continue
		}
		text := data.Text()
		if !strings.Contains(strings.ToLower(text), crashMarker) {
			continue
		}

		eventID := event.FindElement(eventIDPath)
		if eventID == nil {
			return nil, diagerrors.WrapMissingField(op, path, diagerrors.ErrMissingField)
		}

		anomalies = append(anomalies,
			models.NewIssue(models.CategoryEventAnomaly, text).WithCode(strings.TrimSpace(eventID.Text())))
	}

	p.logger.Debug().Str("path", path).Int("anomalies", len(anomalies)).Msg("event log parsed")
	return anomalies, nil
}
