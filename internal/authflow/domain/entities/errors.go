package entities

// FieldErrors - сообщения об ошибках по полям. Пустая карта означает валидную форму.
type FieldErrors map[Field]string

// Valid сообщает, что ошибок нет.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Get возвращает сообщение для поля.
func (e FieldErrors) Get(field Field) (string, bool) {
	msg, ok := e[field]
	return msg, ok
}

// General возвращает общую ошибку отправки или пустую строку.
func (e FieldErrors) General() string {
	return e[FieldGeneral]
}

// Without возвращает копию без ошибки указанного поля. Исходная карта не меняется.
func (e FieldErrors) Without(field Field) FieldErrors {
	if _, ok := e[field]; !ok {
		return e
	}
	out := make(FieldErrors, len(e)-1)
	for k, v := range e {
		if k != field {
			out[k] = v
		}
	}
	return out
}

// GeneralError создает карту с единственной общей ошибкой.
func GeneralError(msg string) FieldErrors {
	return FieldErrors{FieldGeneral: msg}
}
