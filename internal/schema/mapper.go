package schema

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/nazimov/vmrecon/internal/domain"
)

// ErrUnrecognized means no signature cleared its threshold for the given
// headers. The caller skips the file and reports it as unknown.
var ErrUnrecognized = errors.New("schema unrecognized")

// optionalBonusCap limits how much optional columns can raise a score.
const optionalBonusCap = 0.3

// Mapping binds canonical field names to the file's original headers.
type Mapping struct {
	Kind   domain.SourceKind
	Fields map[string]string // canonical name -> original header
	Score  float64
}

// FieldType looks up the parse type of a mapped canonical field.
func (m *Mapping) FieldType(name string) FieldType {
	sig := signatures[m.Kind]
	for _, f := range sig.Required {
		if f.Name == name {
			return f.Type
		}
	}
	for _, f := range sig.Optional {
		if f.Name == name {
			return f.Type
		}
	}
	return FieldString
}

type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Detect resolves a header set to a source kind. With a concrete hint only
// that kind is scored; with SourceUnknown all kinds compete and the best
// passing kind wins, ties resolved by priority order.
func (m *Mapper) Detect(headers []string, hint domain.SourceKind) (*Mapping, error) {
	if hint != "" && hint != domain.SourceUnknown {
		sig, ok := signatures[hint]
		if !ok {
			return nil, ErrUnrecognized
		}
		mapping := m.score(headers, sig)
		if mapping.Score < sig.Threshold {
			zap.L().Info("headers below threshold for hinted kind",
				zap.String("kind", string(hint)), zap.Float64("score", mapping.Score))
			return nil, ErrUnrecognized
		}
		return mapping, nil
	}

	var best *Mapping
	for _, kind := range priority {
		sig := signatures[kind]
		mapping := m.score(headers, sig)
		if mapping.Score < sig.Threshold {
			continue
		}
		if best == nil || mapping.Score > best.Score {
			best = mapping
		}
	}
	if best == nil {
		return nil, ErrUnrecognized
	}
	return best, nil
}

func (m *Mapper) score(headers []string, sig Signature) *Mapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	fields := make(map[string]string)

	requiredMatches := 0
	for _, f := range sig.Required {
		if header, ok := findHeader(f.Keywords, normalized, headers, fields); ok {
			fields[f.Name] = header
			requiredMatches++
		}
	}

	bonus := 0.0
	for _, f := range sig.Optional {
		if header, ok := findHeader(f.Keywords, normalized, headers, fields); ok {
			fields[f.Name] = header
			bonus += 0.1
		}
	}
	if bonus > optionalBonusCap {
		bonus = optionalBonusCap
	}

	score := float64(requiredMatches)/float64(len(sig.Required)) + bonus
	if score > 1.0 {
		score = 1.0
	}

	return &Mapping{Kind: sig.Kind, Fields: fields, Score: score}
}

// findHeader returns the first unclaimed header matching any keyword.
// Headers already bound to another canonical field are skipped so one
// column never serves two fields.
func findHeader(keywords, normalized, original []string, taken map[string]string) (string, bool) {
	claimed := make(map[string]bool, len(taken))
	for _, h := range taken {
		claimed[h] = true
	}
	for _, kw := range keywords {
		kw = normalizeHeader(kw)
		for i, h := range normalized {
			if h == "" || claimed[original[i]] {
				continue
			}
			if strings.Contains(h, kw) || strings.Contains(kw, h) {
				return original[i], true
			}
		}
	}
	return "", false
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}
