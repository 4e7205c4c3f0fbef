package backend

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// terminationSignals are the signals after which the terminal must be
// restored before the process ends. Fault signals are caught only when
// sent with kill; a fault raised by the program itself is a panic, which
// the event loop recovers.
var terminationSignals = []os.Signal{
	syscall.SIGTERM,
	syscall.SIGINT,
	syscall.SIGHUP,
	syscall.SIGQUIT,
	syscall.SIGSEGV,
	syscall.SIGBUS,
	syscall.SIGABRT,
}

// notifyTermination waits for a termination signal on a dedicated goroutine.
// On delivery it calls restore and then exit without returning control to
// the rest of the program.
func notifyTermination(restore func(), exit func(code int)) (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, terminationSignals...)

	go func() {
		select {
		case sig := <-sigs:
			restore()
			exit(signalExitCode(sig))
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}

// signalExitCode follows the shell convention of 128 plus the signal number.
func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
