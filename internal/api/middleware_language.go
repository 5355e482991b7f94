package api

import "github.com/gofiber/fiber/v2"

// LanguageMiddleware resolves the response language from the language
// cookie, falling back to the Accept-Language header.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := ""
	if cookie := c.Cookies(languageCookieName); cookie != "" {
		language = handler.i18n.NormalizeLanguage(cookie)
	} else {
		language = handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(currentLanguage(c), key)
}

func (handler *Handler) translatef(c *fiber.Ctx, key string, args ...any) string {
	return handler.i18n.Translatef(currentLanguage(c), key, args...)
}
