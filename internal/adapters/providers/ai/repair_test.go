package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairTriage_FencedJSONWithProse(t *testing.T) {
	raw := "Here is your assessment:\n```json\n" +
		`{"urgency": "High", "summary": "Possible flu", ` +
		`"possible_conditions": ["Influenza", "COVID-19"], ` +
		`"advice": ["Rest", "Hydrate"], "specialist": "General Physician", ` +
		`"emergency": false}` +
		"\n```\nStay safe!"

	triage := RepairTriage(raw)
	require.NotNil(t, triage)
	assert.Equal(t, "High", triage.Urgency)
	assert.Equal(t, "Possible flu", triage.Summary)
	assert.Equal(t, []string{"Influenza", "COVID-19"}, triage.PossibleConditions)
	assert.Equal(t, []string{"Rest", "Hydrate"}, triage.Advice)
	assert.Equal(t, "General Physician", triage.Specialist)
	assert.False(t, triage.Emergency)
}

func TestRepairTriage_PlainJSON(t *testing.T) {
	triage := RepairTriage(`{"urgency": "Low", "summary": "Minor", "specialist": "Dermatologist", "emergency": false}`)
	require.NotNil(t, triage)
	assert.Equal(t, "Low", triage.Urgency)
	assert.Equal(t, "Dermatologist", triage.Specialist)
}

func TestRepairTriage_Garbage(t *testing.T) {
	assert.Nil(t, RepairTriage("not json at all"))
	assert.Nil(t, RepairTriage(""))
	assert.Nil(t, RepairTriage("   \n\t  "))
	assert.Nil(t, RepairTriage("} backwards {"))
	assert.Nil(t, RepairTriage("```json\n```"))
}

func TestRepairTriage_EmptyObjectIsNil(t *testing.T) {
	assert.Nil(t, RepairTriage("{}"))
	assert.Nil(t, RepairTriage("```json\n{}\n```"))
}

func TestRepairTriage_NonObjectIsNil(t *testing.T) {
	assert.Nil(t, RepairTriage(`["urgency", "High"]`))
	assert.Nil(t, RepairTriage(`"just a string"`))
}

func TestRepairTriage_SpecialistListCollapsesToFirst(t *testing.T) {
	triage := RepairTriage(`{"urgency": "Moderate", "specialist": ["Cardiologist", "General Physician"]}`)
	require.NotNil(t, triage)
	assert.Equal(t, "Cardiologist", triage.Specialist)
}

func TestRepairTriage_EmptySpecialistList(t *testing.T) {
	triage := RepairTriage(`{"urgency": "Moderate", "specialist": []}`)
	require.NotNil(t, triage)
	assert.Equal(t, "General Physician", triage.Specialist)
}

func TestRepairTriage_MissingSpecialistAndUrgencyDefault(t *testing.T) {
	triage := RepairTriage(`{"summary": "Chest pain", "advice": ["rest"]}`)
	require.NotNil(t, triage)
	assert.Equal(t, "General Physician", triage.Specialist)
	assert.Equal(t, "Moderate", triage.Urgency)
	assert.Equal(t, "Chest pain", triage.Summary)
}

func TestRepairTriage_BraceScanRecoversEmbeddedObject(t *testing.T) {
	raw := `The model says {"urgency": "High", "specialist": "ENT", "emergency": true} which you should heed.`
	triage := RepairTriage(raw)
	require.NotNil(t, triage)
	assert.Equal(t, "High", triage.Urgency)
	assert.Equal(t, "ENT", triage.Specialist)
	assert.True(t, triage.Emergency)
}

func TestRepairTriage_SingleQuotedLiterals(t *testing.T) {
	raw := `{'urgency': 'High', 'summary': 'Chest pain', 'possible_conditions': ['Angina'], 'advice': ['Call emergency services'], 'specialist': 'Cardiologist', 'emergency': True}`
	triage := RepairTriage(raw)
	require.NotNil(t, triage)
	assert.Equal(t, "High", triage.Urgency)
	assert.Equal(t, "Chest pain", triage.Summary)
	assert.Equal(t, []string{"Angina"}, triage.PossibleConditions)
	assert.Equal(t, "Cardiologist", triage.Specialist)
	assert.True(t, triage.Emergency)
}

func TestRepairTriage_SingleQuotesWithEmbeddedDoubleQuote(t *testing.T) {
	raw := `{'urgency': 'Low', 'summary': 'Patient said "it hurts"', 'emergency': False}`
	triage := RepairTriage(raw)
	require.NotNil(t, triage)
	assert.Equal(t, `Patient said "it hurts"`, triage.Summary)
	assert.False(t, triage.Emergency)
}

func TestNormalizeLiterals_LeavesDoubleQuotedContentAlone(t *testing.T) {
	in := `{"note": "don't touch True here", 'flag': True}`
	out := normalizeLiterals(in)
	assert.Equal(t, `{"note": "don't touch True here", "flag": true}`, out)
}
