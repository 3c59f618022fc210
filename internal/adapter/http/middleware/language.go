package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"trackr/pkg/translator"
)

const langKey = "lang"

// English first: it is what the matcher falls back to.
var languageMatcher = language.NewMatcher([]language.Tag{language.English, language.French})

// LanguageMiddleware resolves Accept-Language to one of the supported
// translation languages.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, matchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func matchLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}
	tag, _, _ := languageMatcher.Match(tags...)
	base, _ := tag.Base()
	return base.String()
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
