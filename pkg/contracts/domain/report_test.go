package domain

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestPipelineStats_AttritionPercent(t *testing.T) {
	tests := []struct {
		name  string
		stats PipelineStats
		want  float64
	}{
		{name: "empty run", stats: PipelineStats{}, want: 0},
		{name: "nothing excluded", stats: PipelineStats{Retained: 100}, want: 0},
		{name: "everything excluded", stats: PipelineStats{ValidityExcluded: 50}, want: 100},
		{name: "typical heavy attrition", stats: PipelineStats{ValidityExcluded: 6978, Retained: 3855}, want: 100 * 6978.0 / 10833.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.stats.AttritionPercent(), 0.0001)
		})
	}
}

func TestRunReport_ContractValidation(t *testing.T) {
	validate := validator.New()

	report := RunReport{
		RunID:  "7f9c24e8-3b9d-4a7b-8f2e-1c5d6e7f8a9b",
		Source: "movies.csv",
	}
	assert.NoError(t, validate.Struct(report))

	report.RunID = "not-a-uuid"
	assert.Error(t, validate.Struct(report))

	report.RunID = "7f9c24e8-3b9d-4a7b-8f2e-1c5d6e7f8a9b"
	report.Source = ""
	assert.Error(t, validate.Struct(report))
}
