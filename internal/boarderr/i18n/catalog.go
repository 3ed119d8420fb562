// Package i18n renders boarderr.Error messages for a requested locale.
package i18n

import (
	"bytes"
	"sync"
	"text/template"

	"golang.org/x/text/language"

	"github.com/boardsmith/boardsmith/internal/boarderr"
)

var baseMessages = map[boarderr.Code]string{
	boarderr.NotYourTurn:          "It is not your turn.",
	boarderr.ActionUnavailable:    "That action is not currently available.",
	boarderr.MissingSelection:     "A required selection is missing: {{.selection}}",
	boarderr.InvalidSelection:     "{{.value}} is not a valid choice for {{.selection}}.",
	boarderr.SelectionDisabled:    "{{.value}} is disabled: {{.reason}}",
	boarderr.ConditionFailed:      "Condition failed: {{.condition}}",
	boarderr.ExecuteThrew:         "The action failed to execute.",
	boarderr.ColorAlreadyTaken:    "That color is already taken by {{.player}}.",
	boarderr.LobbyNotWaiting:      "The lobby is no longer accepting changes.",
	boarderr.GameNotFound:         "No game was found with that id.",
	boarderr.PlayerNotInLobby:     "That player is not in the lobby.",
	boarderr.InvalidJSON:          "The request body was not valid JSON.",
	boarderr.InternalError:        "An internal error occurred.",
	boarderr.HostPrivilegeRequired: "This action requires host privileges.",
}

// Catalog holds locale-tagged message templates for a single locale.
type Catalog struct {
	tag      language.Tag
	messages map[boarderr.Code]string
}

var (
	mu       sync.RWMutex
	catalogs = map[language.Tag]*Catalog{}
)

// GetCatalog returns the best match among registered catalogs (see
// RegisterCatalog) for the requested locale, falling back to American
// English when nothing registered is even loosely related to it.
func GetCatalog(locale string) *Catalog {
	requested, _ := language.Parse(locale)

	mu.RLock()
	supported := make([]language.Tag, 0, len(catalogs)+1)
	for tag := range catalogs {
		supported = append(supported, tag)
	}
	mu.RUnlock()
	if len(supported) == 0 {
		supported = []language.Tag{language.AmericanEnglish}
	}

	_, index, confidence := language.NewMatcher(supported).Match(requested)
	tag := supported[index]
	if confidence == language.No {
		tag = language.AmericanEnglish
	}

	mu.Lock()
	defer mu.Unlock()
	if c, ok := catalogs[tag]; ok {
		return c
	}
	c := &Catalog{tag: tag, messages: baseMessages}
	catalogs[tag] = c
	return c
}

// RegisterCatalog installs locale-specific overrides, replacing the base
// English templates for any code present in messages.
func RegisterCatalog(locale string, messages map[boarderr.Code]string) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	merged := make(map[boarderr.Code]string, len(baseMessages)+len(messages))
	for k, v := range baseMessages {
		merged[k] = v
	}
	for k, v := range messages {
		merged[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	catalogs[tag] = &Catalog{tag: tag, messages: merged}
}

// Locale returns the BCP 47 tag this catalog renders for.
func (c *Catalog) Locale() string {
	return c.tag.String()
}

// Format renders the message template for code using metadata, falling back
// to the bare code string when no template is registered.
func (c *Catalog) Format(code boarderr.Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return string(code)
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
