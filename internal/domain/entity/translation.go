package entity

// Translation: переведенная запись, привязанная к коду языка
type Translation interface {
	Locale() string
}

// PickTranslation выбирает перевод для запрошенной локали.
// Порядок: запрошенная локаль, локаль по умолчанию, первый доступный перевод.
func PickTranslation[T Translation](translations []T, locale, fallback string) (T, bool) {
	var zero T
	if len(translations) == 0 {
		return zero, false
	}
	for _, t := range translations {
		if t.Locale() == locale {
			return t, true
		}
	}
	for _, t := range translations {
		if t.Locale() == fallback {
			return t, true
		}
	}
	return translations[0], true
}
