package submission

import "sync/atomic"

// Flag - признак выполняющейся отправки. Им владеет координатор и передает
// контроллерам; изменять его может только Controller.
type Flag struct {
	busy atomic.Bool
}

// Loading сообщает, выполняется ли сейчас отправка.
func (f *Flag) Loading() bool {
	return f.busy.Load()
}

func (f *Flag) acquire() bool {
	return f.busy.CompareAndSwap(false, true)
}

func (f *Flag) release() {
	f.busy.Store(false)
}
