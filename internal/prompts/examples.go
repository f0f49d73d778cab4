package prompts

import "strings"

const DefaultLanguage = "ru"

type Examples struct {
	Positive string
	Negative string
	Bad      string
}

var fewShot = map[string]Examples{
	"en": {
		Positive: `{"title":"Successful login with valid credentials","steps":["Open the login page","Enter a registered email","Enter the correct password","Click 'Log in'"],"expected":"The user is redirected to the dashboard"}`,
		Negative: `{"title":"Login rejected with a wrong password","steps":["Open the login page","Enter a registered email","Enter an incorrect password","Click 'Log in'"],"expected":"An 'Invalid credentials' message is shown and the user stays on the login page"}`,
		Bad:      `{"title":"Test login","steps":["Check that login works"],"expected":"Works"}`,
	},
	"ru": {
		Positive: `{"title":"Успешный вход с корректными данными","steps":["Открыть страницу входа","Ввести зарегистрированный email","Ввести верный пароль","Нажать 'Войти'"],"expected":"Пользователь перенаправлен на панель управления"}`,
		Negative: `{"title":"Вход отклонён при неверном пароле","steps":["Открыть страницу входа","Ввести зарегистрированный email","Ввести неверный пароль","Нажать 'Войти'"],"expected":"Показано сообщение 'Неверные данные', пользователь остаётся на странице входа"}`,
		Bad:      `{"title":"Тест входа","steps":["Проверить, что вход работает"],"expected":"Работает"}`,
	},
}

// ExamplesFor returns the few-shot examples for lang. Languages without their
// own set fall back to English.
func ExamplesFor(lang string) Examples {
	if ex, ok := fewShot[normalizeLang(lang)]; ok {
		return ex
	}
	return fewShot["en"]
}

func HasExamples(lang string) bool {
	_, ok := fewShot[normalizeLang(lang)]
	return ok
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}
