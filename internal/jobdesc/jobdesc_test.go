package jobdesc

import "testing"

func TestCleanPlainText(t *testing.T) {
	got, err := Clean("  Senior   Data Engineer \r\n\n  Python,   Kubernetes  ")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	want := "Senior Data Engineer\nPython, Kubernetes"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCleanHTMLDropsNoise(t *testing.T) {
	raw := `<html><head><style>.x{color:red}</style><script>track()</script></head>
<body><nav>Home | Jobs</nav>
<h2>Data Engineer</h2><p>Cape Town based role.</p>
<ul><li>Python</li><li>Kubernetes</li></ul>
<footer>Copyright</footer></body></html>`

	got, err := Clean(raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	want := "Data Engineer\nCape Town based role.\nPython\nKubernetes"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCleanEmpty(t *testing.T) {
	got, err := Clean(" \n\t ")
	if err != nil || got != "" {
		t.Fatalf("expected empty result, got %q %v", got, err)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	cases := map[string]bool{
		"<p>hello</p>":        true,
		"salary < R50k":       false,
		"use <br/> for lines": true,
		"plain text":          false,
	}
	for in, want := range cases {
		if got := LooksLikeHTML(in); got != want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", in, got, want)
		}
	}
}
