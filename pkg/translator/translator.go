package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

//go:embed translation/*.toml
var bundled embed.FS

type Config struct {
	// TranslationFolder overrides the bundled messages when set.
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageEn = "en"
	LanguageEs = "es"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	var source fs.FS = bundled
	dir := "translation"
	if cfg.TranslationFolder != "" {
		if _, err := os.Stat(cfg.TranslationFolder); err != nil {
			zap.L().Warn("translation folder unavailable, using bundled messages", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		} else {
			source = os.DirFS(cfg.TranslationFolder)
			dir = "."
		}
	}

	entries, err := fs.ReadDir(source, dir)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isSupported(entry.Name(), cfg.SupportedLanguages) {
			continue
		}

		file := path.Join(dir, entry.Name())
		buf, err := fs.ReadFile(source, file)
		if err != nil {
			zap.L().Warn("failed to read translation file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if _, err := Translator.ParseMessageFileBytes(buf, entry.Name()); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", entry.Name()), zap.Error(err))
		}
	}
}

// isSupported keeps files named "<lang>.toml" whose language is listed.
// An empty list accepts every TOML file.
func isSupported(name string, languages []string) bool {
	lang, ok := strings.CutSuffix(name, ".toml")
	if !ok {
		return false
	}
	if len(languages) == 0 {
		return true
	}
	for _, supported := range languages {
		if strings.EqualFold(lang, supported) {
			return true
		}
	}
	return false
}
