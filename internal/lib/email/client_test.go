package email

import (
	"strings"
	"testing"
)

func TestRenderPreviewTemplates(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, value := range data {
				if !strings.Contains(html, value) {
					t.Errorf("rendered %s template is missing %q", name, value)
				}
			}
		})
	}
}

func TestRenderEscapesUserInput(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{"UserName": "<script>x</script>"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("user name was not escaped")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render(Template("missing"), nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
