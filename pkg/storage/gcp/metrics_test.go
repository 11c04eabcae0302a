package gcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	monitoringpb "cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
)

func TestExtractUsageValue(t *testing.T) {
	tests := []struct {
		name  string
		value *monitoringpb.TypedValue
		want  int64
	}{
		{
			name:  "double rounds to nearest byte",
			value: &monitoringpb.TypedValue{Value: &monitoringpb.TypedValue_DoubleValue{DoubleValue: 1536.6}},
			want:  1537,
		},
		{
			name:  "int64 passes through",
			value: &monitoringpb.TypedValue{Value: &monitoringpb.TypedValue_Int64Value{Int64Value: 2048}},
			want:  2048,
		},
		{
			name:  "nil point",
			value: nil,
			want:  0,
		},
		{
			name:  "unexpected value type",
			value: &monitoringpb.TypedValue{Value: &monitoringpb.TypedValue_StringValue{StringValue: "n/a"}},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUsageValue(tt.value))
		})
	}
}
