package roster

import (
	"testing"

	domain "placementcms/domain/roster"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		header string
		want   domain.HeaderKey
	}{
		{"Roll No", "rollno"},
		{"rollno", "rollno"},
		{"ROLL-NO", "rollno"},
		{"  E-mail Address ", "emailaddress"},
		{"BTech %", "btech"},
		{"10th (SSC) Marks", "10thsscmarks"},
		{"Año", "ao"},
		{"", ""},
		{"%%%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.header))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, h := range []string{"Full Name", "B.Tech CGPA", "Aadhar Card No.", "Année"} {
		once := Normalize(h)
		assert.Equal(t, once, Normalize(string(once)), h)
	}
}
