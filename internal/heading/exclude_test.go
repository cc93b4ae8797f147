package heading

import (
	"testing"

	"github.com/dgallion1/docoutline/internal/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Check(t *testing.T) {
	f := NewFilter(DefaultConfig())
	tests := []struct {
		text string
		want Reason
	}{
		{"", ReasonEmpty},
		{"- 12 -", ReasonBoilerplate},
		{"Page 3", ReasonBoilerplate},
		{"page 4 of 10", ReasonBoilerplate},
		{"3 of 10", ReasonBoilerplate},
		{"xii", ReasonBoilerplate},
		{"XIV", ReasonBoilerplate},
		{"Mix", NotExcluded},
		{"Dix", NotExcluded},
		{"Civic", NotExcluded},
		{"Figure 2: Architecture", ReasonBoilerplate},
		{"Table 1 Results", ReasonBoilerplate},
		{"图 3 系统架构", ReasonBoilerplate},
		{"https://example.com/docs", ReasonBoilerplate},
		{"see www.example.org for details", ReasonBoilerplate},
		{"john@example.com", ReasonBoilerplate},
		{"/usr/local/share/doc", ReasonBoilerplate},
		{"quarterly-report.pdf", ReasonBoilerplate},
		{"12/05/2023", ReasonBoilerplate},
		{"2023-05-12", ReasonBoilerplate},
		{"March 2024", ReasonBoilerplate},
		{"May 5, 2024", ReasonBoilerplate},
		{"2024年5月", ReasonBoilerplate},
		{"© 2024 Acme Corp", ReasonBoilerplate},
		{"Copyright 2024 Acme", ReasonBoilerplate},
		{"Acme Inc. All rights reserved", ReasonBoilerplate},
		{"──────────", ReasonDivider},
		{"$ % & 12", ReasonLowSignal},
		{"The results are shown below", ReasonFunctionWord},
		{"and then we proceed", ReasonFunctionWord},
		{"في البداية", ReasonFunctionWord},
		{"A. Scope", NotExcluded},
		{"Results", NotExcluded},
		{"Marketing 2024", NotExcluded},
		{"Mid-Year Review", NotExcluded},
		{"Table of Contents", NotExcluded},
		{"第一章 緒論", NotExcluded},
		{"Введение", NotExcluded},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			got := f.Check(textnorm.Normalize(tc.text))
			assert.Equal(t, tc.want, got, "reason %s", got)
		})
	}
}

func TestFilter_FunctionWordSkippedForCJK(t *testing.T) {
	f := NewFilter(DefaultConfig())
	assert.False(t, f.Excluded("the 研究"))
}
