package tts

// Announcer абстракция озвучки. Метод запускает произнесение текста и сразу возвращает управление:
// время произнесения не должно влиять на таймер тренировки, ошибки только логируются.
type Announcer interface {
	Announce(text string)
}

// AnnouncerFunc позволяет использовать обычную функцию как Announcer.
type AnnouncerFunc func(text string)

func (f AnnouncerFunc) Announce(text string) { f(text) }
