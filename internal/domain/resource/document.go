package resource

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Document is the transport-safe form of a Record.
type Document map[string]any

// Serialize renders every non-sensitive field of r. Decimals keep their
// fixed scale and timestamps are ISO-8601 strings.
func Serialize(s *Schema, r *Record) Document {
	doc := make(Document, len(s.Fields)+3)
	doc["id"] = r.ID
	for _, f := range s.Fields {
		if f.Sensitive {
			continue
		}
		doc[f.Name] = render(r.Values[f.Name])
	}
	doc["created_at"] = FormatTime(r.CreatedAt)
	if s.HasUpdatedAt {
		if r.UpdatedAt != nil {
			doc["updated_at"] = FormatTime(*r.UpdatedAt)
		} else {
			doc["updated_at"] = nil
		}
	}
	return doc
}

func render(v any) any {
	switch v := v.(type) {
	case decimal.Decimal:
		return v.StringFixed(DecimalScale)
	case time.Time:
		return FormatTime(v)
	case json.RawMessage:
		if len(v) == 0 {
			return nil
		}
		return v
	default:
		return v
	}
}
