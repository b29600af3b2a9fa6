package rpc

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/cvboard/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestRecord_PostedAtKeepsNanosecondPrecision(t *testing.T) {
	r := models.Record{
		Owner:          "abc-123",
		Name:           "Ann",
		Qualifications: []string{"BSc", "MSc"},
		Skills:         []string{"Go"},
		PostedAt:       1_700_000_000_123_456_789,
	}

	st, err := EncodeRecord(r)
	require.NoError(t, err)
	assert.Equal(t, "1700000000123456789", st.GetFields()[FieldPostedAt].GetStringValue())

	got, err := DecodeRecord(st)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(r, got))
}

func TestDecodeRecord_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
	}{
		{name: "missing name", fields: map[string]any{"owner": "o", "qualifications": []any{}, "skills": []any{}, "postedAt": "1"}},
		{name: "numeric name", fields: map[string]any{"owner": "o", "name": 5, "qualifications": []any{}, "skills": []any{}, "postedAt": "1"}},
		{name: "skills not list", fields: map[string]any{"owner": "o", "name": "n", "qualifications": []any{}, "skills": "Go", "postedAt": "1"}},
		{name: "non-string skill", fields: map[string]any{"owner": "o", "name": "n", "qualifications": []any{}, "skills": []any{1}, "postedAt": "1"}},
		{name: "bad postedAt", fields: map[string]any{"owner": "o", "name": "n", "qualifications": []any{}, "skills": []any{}, "postedAt": "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := structpb.NewStruct(tt.fields)
			require.NoError(t, err)
			_, err = DecodeRecord(st)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestOptionalRecord_NullMeansAbsent(t *testing.T) {
	v, err := EncodeOptionalRecord(nil)
	require.NoError(t, err)
	got, err := DecodeOptionalRecord(v)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = DecodeOptionalRecord(&structpb.Value{})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = DecodeOptionalRecord(structpb.NewStringValue("nope"))
	assert.True(t, errors.Is(err, ErrMalformed))

	r := &models.Record{Owner: "o", Name: "n", Qualifications: []string{"q"}, Skills: []string{"s"}, PostedAt: 42}
	v, err = EncodeOptionalRecord(r)
	require.NoError(t, err)
	got, err = DecodeOptionalRecord(v)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestRecordList_PreservesOrder(t *testing.T) {
	in := []models.Record{
		{Owner: "a", Name: "first", Qualifications: []string{"q"}, Skills: []string{"Go"}, PostedAt: 1},
		{Owner: "b", Name: "second", Qualifications: []string{"q"}, Skills: []string{"Rust"}, PostedAt: 2},
	}
	list, err := EncodeRecordList(in)
	require.NoError(t, err)

	out, err := DecodeRecordList(list)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(in, out))

	_, err = DecodeRecordList(&structpb.ListValue{Values: []*structpb.Value{structpb.NewBoolValue(true)}})
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestSubmission_RoundTrip(t *testing.T) {
	s := models.Submission{Name: "Ann", Qualifications: []string{"BSc"}, Skills: []string{"Go", "SQL"}}
	st, err := EncodeSubmission(s)
	require.NoError(t, err)
	got, err := DecodeSubmission(st)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
