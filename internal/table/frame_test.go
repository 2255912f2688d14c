// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

const sampleCSV = `id,name,score,active,note
1,alpha,1.5,true,
2,beta,2,false,
3,gamma,,TRUE,
`

func TestReadCSV_InfersTypes(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	want := &Frame{Columns: []Column{
		{Name: "id", DType: Int64, Values: []any{int64(1), int64(2), int64(3)}},
		{Name: "name", DType: String, Values: []any{"alpha", "beta", "gamma"}},
		{Name: "score", DType: Float64, Values: []any{1.5, 2.0, nil}},
		{Name: "active", DType: Bool, Values: []any{true, false, true}},
		{Name: "note", DType: Null, Values: []any{nil, nil, nil}},
	}}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, f.Height())
	assert.Equal(t, 5, f.Width())
}

func TestInferColumn(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  DType
	}{
		{"integers", []string{"1", "-2", "300"}, Int64},
		{"ints and floats widen", []string{"1", "2.5"}, Float64},
		{"scientific notation", []string{"1e3", "2"}, Float64},
		{"bools any case", []string{"True", "false", "FALSE"}, Bool},
		{"mixed bool and int", []string{"true", "1"}, String},
		{"text", []string{"a", "1"}, String},
		{"empty cells ignored", []string{"", "7", ""}, Int64},
		{"all empty", []string{"", ""}, Null},
		{"no cells", nil, Null},
		{"int overflow is float", []string{"99999999999999999999"}, Float64},
		{"leading dot and sign", []string{".5", "+2.", "-1E-3"}, Float64},
		{"nan and inf words are text", []string{"nan", "NaN", "Inf", "infinity"}, String},
		{"hex float is text", []string{"0x1p3"}, String},
		{"float overflow is text", []string{"1e999"}, String},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inferColumn("c", tt.cells)
			assert.Equal(t, tt.want, got.DType)
			assert.Len(t, got.Values, len(tt.cells))
		})
	}
}

func TestColumnNames(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"empty and repeated", []string{"a", "", "a", "b", "a"}, []string{"a", "column_2", "a_duplicated_0", "b", "a_duplicated_1"}},
		{"suffix already taken", []string{"a", "a", "a_duplicated_0"}, []string{"a", "a_duplicated_0", "a_duplicated_0_duplicated_0"}},
		{"taken before repeat", []string{"a_duplicated_0", "a", "a"}, []string{"a_duplicated_0", "a", "a_duplicated_1"}},
		{"case-insensitive", []string{"Name", "name", "NAME"}, []string{"Name", "name_duplicated_0", "NAME_duplicated_1"}},
		{"generated name collides", []string{"column_2", ""}, []string{"column_2", "column_2_duplicated_0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := columnNames(tt.header)
			assert.Equal(t, tt.want, got)

			seen := make(map[string]bool)
			for _, n := range got {
				assert.False(t, seen[strings.ToLower(n)], "duplicate name %q", n)
				seen[strings.ToLower(n)] = true
			}
		})
	}
}

func TestReadCSV_NonFiniteWordsStayText(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("name,score\nnan,NaN\ninf,Inf\n"))
	require.NoError(t, err)

	for _, c := range f.Columns {
		assert.Equal(t, String, c.DType, c.Name)
	}
	var buf bytes.Buffer
	require.NoError(t, f.WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"score": "NaN"`)
}

func TestRecordMarshalJSON_NonFiniteIsNull(t *testing.T) {
	r := Record{Keys: []string{"a", "b", "c", "d"}, Values: []any{math.NaN(), math.Inf(1), math.Inf(-1), 1.5}}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":null,"c":null,"d":1.5}`, string(data))
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"ragged rows", "a,b\n1,2\n3\n"},
		{"bare quote", "a,b\n1,\"unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestFromRecords_PadsShortRows(t *testing.T) {
	f, err := FromRecords([]string{"a", "b", "c"}, [][]string{{"1"}, {"2", "x", "y"}})
	require.NoError(t, err)

	b, ok := f.Column("b")
	require.True(t, ok)
	assert.Equal(t, []any{nil, "x"}, b.Values)

	_, err = FromRecords([]string{"a"}, [][]string{{"1", "2"}})
	assert.ErrorContains(t, err, "row 2 has 2 fields")

	_, err = FromRecords(nil, nil)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestHead(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, f.Head(2).Height())
	assert.Equal(t, 3, f.Head(10).Height())
	assert.Equal(t, 0, f.Head(-1).Height())
	assert.Equal(t, f.Names(), f.Head(1).Names())
}

func TestRender(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("id,name\n1,alpha\n2,\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))

	want := `shape: (2, 2)
┌─────┬─────────┐
│ id  ┆ name    │
│ --- ┆ ---     │
│ i64 ┆ str     │
╞═════╪═════════╡
│ 1   ┆ "alpha" │
│ 2   ┆ null    │
└─────┴─────────┘
`
	assert.Equal(t, want, buf.String())
}

func TestRender_TruncatesWideCells(t *testing.T) {
	old := MaxCellWidth
	MaxCellWidth = 8
	defer func() { MaxCellWidth = old }()

	f, err := FromRecords([]string{"text"}, [][]string{{"abcdefghijklmnop"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))
	assert.Contains(t, buf.String(), "…")
	assert.NotContains(t, buf.String(), "abcdefghijklmnop")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "2.0", FormatValue(2.0, false))
	assert.Equal(t, "1.25", FormatValue(1.25, false))
	assert.Equal(t, "-7", FormatValue(int64(-7), false))
	assert.Equal(t, "true", FormatValue(true, false))
	assert.Equal(t, "", FormatValue(nil, false))
	assert.Equal(t, "null", FormatValue(nil, true))
	assert.Equal(t, `"x"`, FormatValue("x", true))
}

func TestWriteCSV_RoundTripsValues(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "id,name,score,active,note", lines[0])
	assert.Equal(t, "1,alpha,1.5,true,", lines[1])
	assert.Equal(t, "3,gamma,,true,", lines[3])
}

func TestWriteJSON_KeepsColumnOrder(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("z,a\n1,x\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteJSON(&buf))
	assert.JSONEq(t, `[{"z":1,"a":"x"}]`, buf.String())
	assert.Less(t, strings.Index(buf.String(), `"z"`), strings.Index(buf.String(), `"a"`))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 1)
}

func TestWriteYAML(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("z,a,b\n1,x,\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteYAML(&buf))
	assert.Equal(t, "- z: 1\n  a: x\n  b: null\n", buf.String())

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "x", decoded[0]["a"])
}
