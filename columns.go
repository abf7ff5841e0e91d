package mosespg

import "github.com/jec/moses-pg/wire"

// toColumnDescriptors and toWireColumns translate between the wire
// package's ColumnDescriptor and this package's own copy, so callers of
// Statement.Columns don't need to import wire just to read column
// metadata.
func toColumnDescriptors(cols []wire.ColumnDescriptor) []ColumnDescriptor {
	if cols == nil {
		return nil
	}
	out := make([]ColumnDescriptor, len(cols))
	for i, c := range cols {
		out[i] = ColumnDescriptor{
			Name:         c.Name,
			TableOID:     c.TableOID,
			AttrNum:      c.AttrNum,
			TypeOID:      c.TypeOID,
			TypeLength:   c.TypeLength,
			TypeModifier: c.TypeModifier,
			Format:       c.Format,
		}
	}
	return out
}

func toWireColumns(cols []ColumnDescriptor) []wire.ColumnDescriptor {
	if cols == nil {
		return nil
	}
	out := make([]wire.ColumnDescriptor, len(cols))
	for i, c := range cols {
		out[i] = wire.ColumnDescriptor{
			Name:         c.Name,
			TableOID:     c.TableOID,
			AttrNum:      c.AttrNum,
			TypeOID:      c.TypeOID,
			TypeLength:   c.TypeLength,
			TypeModifier: c.TypeModifier,
			Format:       c.Format,
		}
	}
	return out
}

// validateFormatCodes adapts wire.ValidateFormatCodes' error into the
// client-misuse sentinels Execute/Bind callers can compare against
// directly, instead of a freshly allocated *invalidMessageFormatErr each
// time.
func validateFormatCodes(codes []int16, valueCount int) error {
	if err := wire.ValidateFormatCodes(codes, valueCount); err != nil {
		if len(codes) != 0 && len(codes) != 1 && len(codes) != valueCount {
			return ErrFormatCodeMismatch
		}
		return ErrInvalidFormatCode
	}
	return nil
}
