package i18n

import "testing"

func TestGetCatalogUnknownLocaleFallsBack(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected the compiled en-US catalog")
	}
	if got := GetCatalog("xx-YY"); got != base {
		t.Fatalf("GetCatalog(xx-YY) = %p, want the en-US catalog %p", got, base)
	}
	if got := GetCatalog("  "); got != base {
		t.Fatal("blank locale should resolve to the base catalog")
	}
}

func TestGetCatalogBuildsSpanishFromLocaleFiles(t *testing.T) {
	es := GetCatalog("es")
	if es.Locale() != "es" {
		t.Fatalf("Locale() = %q, want es", es.Locale())
	}
	if got := es.Format(CodeCoreUnavailable, nil); got != "No es posible contactar al demonio central" {
		t.Fatalf("es message = %q", got)
	}
	if again := GetCatalog("es"); again != es {
		t.Fatal("repeated lookups should return the interned catalog")
	}
}

func TestFormatCompiledEnglishMessages(t *testing.T) {
	got := GetCatalog("en-US").Format(CodeCoreUnavailable, nil)
	if got != "The core daemon is not reachable" {
		t.Fatalf("en-US message = %q", got)
	}
}

func TestFormatUnknownCodeRendersTheCode(t *testing.T) {
	cat := NewCatalog("en-US", map[Code]string{"KNOWN": "known"})
	if got := cat.Format("MYSTERY", nil); got != "MYSTERY" {
		t.Fatalf("Format(MYSTERY) = %q, want the code itself", got)
	}
}

func TestFormatRendersTemplatesWithoutMetadata(t *testing.T) {
	cat := NewCatalog("en-US", map[Code]string{"GREET": "hello {{.Name}}"})
	if got := cat.Format("GREET", nil); got != "hello <no value>" {
		t.Fatalf("Format with nil metadata = %q", got)
	}
	if got := cat.Format("GREET", map[string]string{"Name": "operator"}); got != "hello operator" {
		t.Fatalf("Format with metadata = %q", got)
	}
}

func TestFormatBrokenTemplatesFallBackToRawText(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
	}{
		{name: "parse error", tmpl: "{{ if .Name }}"},
		{name: "execute error", tmpl: "{{ call .Name }}"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cat := NewCatalog("en-US", map[Code]string{"BROKEN": tc.tmpl})
			if got := cat.Format("BROKEN", map[string]string{"Name": "x"}); got != tc.tmpl {
				t.Fatalf("Format = %q, want the raw template %q", got, tc.tmpl)
			}
		})
	}
}

func TestRegisterCatalogWinsOverOnDemandBuild(t *testing.T) {
	custom := NewCatalog("pt-BR", map[Code]string{CodeUnknown: "algo deu errado"})
	RegisterCatalog("pt-BR", custom)
	if got := GetCatalog("pt-BR"); got != custom {
		t.Fatal("expected the registered catalog to be returned")
	}
}
