package rpc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/cvboard/internal/models"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the record struct on the wire.
const (
	FieldOwner          = "owner"
	FieldName           = "name"
	FieldQualifications = "qualifications"
	FieldSkills         = "skills"
	FieldPostedAt       = "postedAt"
)

var ErrMalformed = errors.New("malformed value")

// EncodeSubmission builds the AddCV argument struct.
func EncodeSubmission(s models.Submission) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldName:           s.Name,
		FieldQualifications: stringsToAny(s.Qualifications),
		FieldSkills:         stringsToAny(s.Skills),
	})
}

// DecodeSubmission is the inverse of EncodeSubmission.
func DecodeSubmission(st *structpb.Struct) (models.Submission, error) {
	var s models.Submission
	var err error

	if s.Name, err = stringField(st, FieldName); err != nil {
		return s, err
	}
	if s.Qualifications, err = stringListField(st, FieldQualifications); err != nil {
		return s, err
	}
	if s.Skills, err = stringListField(st, FieldSkills); err != nil {
		return s, err
	}
	return s, nil
}

// EncodeRecord maps r to a struct. PostedAt travels as a decimal string:
// nanosecond timestamps do not fit the float64 of a protobuf number value.
func EncodeRecord(r models.Record) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		FieldOwner:          r.Owner,
		FieldName:           r.Name,
		FieldQualifications: stringsToAny(r.Qualifications),
		FieldSkills:         stringsToAny(r.Skills),
		FieldPostedAt:       strconv.FormatInt(r.PostedAt, 10),
	})
}

func DecodeRecord(st *structpb.Struct) (models.Record, error) {
	var r models.Record
	var err error

	if r.Owner, err = stringField(st, FieldOwner); err != nil {
		return r, err
	}
	if r.Name, err = stringField(st, FieldName); err != nil {
		return r, err
	}
	if r.Qualifications, err = stringListField(st, FieldQualifications); err != nil {
		return r, err
	}
	if r.Skills, err = stringListField(st, FieldSkills); err != nil {
		return r, err
	}

	postedAt, err := stringField(st, FieldPostedAt)
	if err != nil {
		return r, err
	}
	if r.PostedAt, err = strconv.ParseInt(postedAt, 10, 64); err != nil {
		return r, fmt.Errorf("%w: %s: %v", ErrMalformed, FieldPostedAt, err)
	}
	return r, nil
}

// EncodeOptionalRecord encodes nil as a null value.
func EncodeOptionalRecord(r *models.Record) (*structpb.Value, error) {
	if r == nil {
		return structpb.NewNullValue(), nil
	}
	st, err := EncodeRecord(*r)
	if err != nil {
		return nil, err
	}
	return structpb.NewStructValue(st), nil
}

// DecodeOptionalRecord returns nil for a null (or unset) value.
func DecodeOptionalRecord(v *structpb.Value) (*models.Record, error) {
	switch kind := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_StructValue:
		r, err := DecodeRecord(kind.StructValue)
		if err != nil {
			return nil, err
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("%w: expected record or null", ErrMalformed)
	}
}

func EncodeRecordList(records []models.Record) (*structpb.ListValue, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(records))}
	for _, r := range records {
		st, err := EncodeRecord(r)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, structpb.NewStructValue(st))
	}
	return list, nil
}

func DecodeRecordList(list *structpb.ListValue) ([]models.Record, error) {
	records := make([]models.Record, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		st := v.GetStructValue()
		if st == nil {
			return nil, fmt.Errorf("%w: item %d is not a record", ErrMalformed, i)
		}
		r, err := DecodeRecord(st)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func stringsToAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func stringField(st *structpb.Struct, name string) (string, error) {
	v, ok := st.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrMalformed, name)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformed, name)
	}
	return s.StringValue, nil
}

func stringListField(st *structpb.Struct, name string) ([]string, error) {
	v, ok := st.GetFields()[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformed, name)
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: %s is not a list", ErrMalformed, name)
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: %s holds a non-string item", ErrMalformed, name)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}
