package jsonfix

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suggestion struct {
	Title          string   `json:"title"`
	MatchScore     float64  `json:"matchScore"`
	RequiredSkills []string `json:"requiredSkills"`
	Remote         *bool    `json:"remote"`
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, StripFences("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, `[]`, StripFences("  ```\n[]```  "))
	assert.Equal(t, `{"x":true}`, StripFences(`{"x":true}`))
}

func TestDecodeStrict(t *testing.T) {
	var out []suggestion
	stage, err := Decode("```json\n[{\"title\":\"Data Analyst\",\"matchScore\":87}]\n```", &out)

	require.NoError(t, err)
	assert.Equal(t, StageStrict, stage)
	require.Len(t, out, 1)
	assert.Equal(t, "Data Analyst", out[0].Title)
}

func TestDecodeRepaired(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"trailing commas", `[{"title":"Data Analyst","matchScore":87,"requiredSkills":["Python","SQL",],},]`},
		{"single quotes", `[{'title':'Data Analyst','matchScore':87,'requiredSkills':['Python','SQL']}]`},
		{"unquoted keys", `[{title:"Data Analyst",matchScore:87,requiredSkills:["Python","SQL"]}]`},
		{"leading and trailing prose", "Sure! Here are your careers:\n[{\"title\":\"Data Analyst\",\"matchScore\":87,\"requiredSkills\":[\"Python\",\"SQL\"]}]\nLet me know if you need more."},
		{"comments", "[{\"title\":\"Data Analyst\", // best fit\n\"matchScore\":87, /* out of 100 */ \"requiredSkills\":[\"Python\",\"SQL\"]}]"},
		{"truncated", `[{"title":"Data Analyst","matchScore":87,"requiredSkills":["Python","SQL"`},
		{"missing commas", `[{"title":"Data Analyst" "matchScore":87 "requiredSkills":["Python" "SQL"]}]`},
		{"typographic quotes", `[{“title”:“Data Analyst”,“matchScore”:87,“requiredSkills”:[“Python”,“SQL”]}]`},
		{"raw newline in string", "[{\"title\":\"Data\nAnalyst\",\"matchScore\":87,\"requiredSkills\":[\"Python\",\"SQL\"]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []suggestion
			stage, err := Decode(tt.raw, &out)

			require.NoError(t, err, "repaired: %s", Repair(StripFences(tt.raw)))
			assert.Equal(t, StageRepaired, stage)
			require.Len(t, out, 1)
			assert.Contains(t, out[0].Title, "Data")
			assert.Equal(t, 87.0, out[0].MatchScore)
			assert.Equal(t, []string{"Python", "SQL"}, out[0].RequiredSkills)
		})
	}
}

func TestRepairLiterals(t *testing.T) {
	var out []suggestion
	stage, err := Decode(`[{"title": Data Analyst, "matchScore": .5, "remote": True}]`, &out)

	require.NoError(t, err)
	assert.Equal(t, StageRepaired, stage)
	assert.Equal(t, "Data Analyst", out[0].Title)
	assert.Equal(t, 0.5, out[0].MatchScore)
	require.NotNil(t, out[0].Remote)
	assert.True(t, *out[0].Remote)
}

func TestRepairDanglingKey(t *testing.T) {
	repaired := Repair(`{"title":"x","matchScore":`)
	assert.True(t, json.Valid([]byte(repaired)), repaired)
}

func TestDecodeFailed(t *testing.T) {
	for _, raw := range []string{
		"I'm sorry, I can't help with that.",
		"",
		"```\n```",
	} {
		var out []suggestion
		stage, err := Decode(raw, &out)

		assert.Equal(t, StageFailed, stage, raw)
		assert.ErrorIs(t, err, ErrUnparseable)
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "strict", StageStrict.String())
	assert.Equal(t, "repaired", StageRepaired.String())
	assert.Equal(t, "failed", StageFailed.String())
}
