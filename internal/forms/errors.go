// Package forms содержит общий слой форм: ошибки полей, работу с датами
// формата YYYY-MM-DD, nullable-значения для команд и обвязку над
// go-playground/validator.
package forms

import "sort"

// FieldErrors - ошибки валидации по полям формы.
//
// Ключ - JSON-имя поля (title, dueDate, ...), значение - сообщение для
// пользователя. Поля, которого нет в карте, считается валидным.
// Пустая карта означает, что вся форма валидна.
type FieldErrors map[string]string

// Valid сообщает, что ошибок нет.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Has проверяет, есть ли ошибка у поля.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Fields возвращает имена полей с ошибками в отсортированном порядке.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Only возвращает карту, в которой оставлена только ошибка указанного поля.
//
// Так работает проверка "на лету": форма валидируется целиком,
// но пользователю показывается ошибка только того поля, которое он меняет.
func (e FieldErrors) Only(field string) FieldErrors {
	out := FieldErrors{}
	if msg, ok := e[field]; ok {
		out[field] = msg
	}
	return out
}
