package i18n

import (
	"errors"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"localesync/internal/domain/entities"
	"localesync/internal/infrastructure/jsonfile"
	"localesync/internal/ports/output"
)

// Ensure Verifier implements the output.LookupVerifier port.
var _ output.LookupVerifier = (*Verifier)(nil)

// Verifier loads a working document into a go-i18n Bundle and resolves
// message IDs the way a go-i18n consumer would. Nested keys become IDs joined
// with ".".
type Verifier struct {
	logger *zap.Logger
}

func NewVerifier(logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{logger: logger}
}

// Bundle returns a go-i18n bundle holding doc as the messages of code.
func (v *Verifier) Bundle(code string, doc *entities.Node) (*i18n.Bundle, language.Tag, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return nil, language.Und, fmt.Errorf("i18n: parse locale %q: %w", code, err)
	}
	data, err := jsonfile.Encode(doc)
	if err != nil {
		return nil, language.Und, fmt.Errorf("i18n: encode %s: %w", code, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if _, err := bundle.ParseMessageFileBytes(data, code+".json"); err != nil {
		return nil, language.Und, fmt.Errorf("i18n: load %s: %w", code, err)
	}
	return bundle, tag, nil
}

// Unresolved localizes every path against doc and returns those go-i18n
// reports as missing. A message that exists but fails to render (for
// instance an i18next-style "{{count}}" placeholder) counts as resolved.
func (v *Verifier) Unresolved(code string, doc *entities.Node, paths []entities.Path) ([]entities.Path, error) {
	bundle, tag, err := v.Bundle(code, doc)
	if err != nil {
		return nil, err
	}
	localizer := i18n.NewLocalizer(bundle, tag.String())

	var unresolved []entities.Path
	for _, p := range paths {
		_, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: p.String()})
		if err == nil {
			continue
		}
		var notFound *i18n.MessageNotFoundErr
		if errors.As(err, &notFound) {
			unresolved = append(unresolved, p)
			continue
		}
		v.logger.Debug("i18n: message found but not renderable",
			zap.String("locale", code),
			zap.String("key", p.String()),
			zap.Error(err),
		)
	}
	return unresolved, nil
}
