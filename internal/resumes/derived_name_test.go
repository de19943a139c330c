package resumes

import "testing"

func TestDeriveName(t *testing.T) {
	cases := []struct {
		roleTitle   string
		companyName string
		want        string
	}{
		{"Backend Engineer", "Acme", "Backend_Engineer-Acme"},
		{"DevOps/SRE Lead", "Acme", "DevOps_SRE_Lead-Acme"},
		{"Senior   Go   Dev", "Acme", "Senior_Go_Dev-Acme"},
		// Company name is never transformed, even with spaces in it.
		{"Engineer", "Big Corp Inc", "Engineer-Big Corp Inc"},
		// Case-sensitive: these are distinct artifacts.
		{"engineer", "acme", "engineer-acme"},
		{"Backend\tEngineer\n", "Acme", "Backend_Engineer_-Acme"},
	}
	for _, tc := range cases {
		if got := DeriveName(tc.roleTitle, tc.companyName); got != tc.want {
			t.Errorf("DeriveName(%q, %q) = %q, want %q", tc.roleTitle, tc.companyName, got, tc.want)
		}
	}
}
