package handlers

// Сообщения, общие для нескольких обработчиков
const (
	MsgMissingUser      = "отсутствует ID или роль пользователя"
	MsgForbidden        = "доступ запрещен"
	MsgInvalidBody      = "некорректное тело запроса"
	MsgStoreUnavailable = "хранилище временно недоступно, повторите запрос позже"

	// MsgSlotConflict показывается клиенту при гонке за слот
	MsgSlotConflict = "this time is no longer available, please choose another"
)
