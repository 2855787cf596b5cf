package i18n

import (
	"encoding/json"
	"io/fs"
	"sort"
	"strings"
	"testing"
)

func TestLocaleKeysParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, LangEN)
	es := mustLoadLocaleMessages(t, LangES)

	missingInES := missingKeys(en, es)
	missingInEN := missingKeys(es, en)

	if len(missingInES) > 0 {
		t.Errorf("keys missing in es locale: %s", strings.Join(missingInES, ", "))
	}
	if len(missingInEN) > 0 {
		t.Errorf("keys missing in en locale: %s", strings.Join(missingInEN, ", "))
	}
}

func mustLoadLocaleMessages(t *testing.T, lang string) map[string]string {
	t.Helper()

	content, err := fs.ReadFile(embeddedLocales, "locales/"+lang+".json")
	if err != nil {
		t.Fatalf("read locale %q: %v", lang, err)
	}

	messages := map[string]string{}
	if err := json.Unmarshal(content, &messages); err != nil {
		t.Fatalf("parse locale %q: %v", lang, err)
	}
	if len(messages) == 0 {
		t.Fatalf("locale %q is empty", lang)
	}

	return messages
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
