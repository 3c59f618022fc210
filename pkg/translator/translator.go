package translator

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // files for other languages are skipped; empty loads all
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

const translationExt = ".toml"

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := filepath.Glob(filepath.Join(cfg.TranslationFolder, "*"+translationExt))
	if err != nil || len(files) == 0 {
		zap.L().Error("no translation files found", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, file := range files {
		lang := strings.TrimSuffix(filepath.Base(file), translationExt)
		if len(cfg.SupportedLanguages) > 0 && !slices.Contains(cfg.SupportedLanguages, lang) {
			zap.L().Debug("skipping unsupported translation file", zap.String("file", file))
			continue
		}
		if _, err := Translator.LoadMessageFile(file); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", file), zap.Error(err))
		}
	}
}

// Languages lists the languages that have loaded messages.
func Languages() []string {
	if Translator == nil {
		return nil
	}
	tags := Translator.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}
