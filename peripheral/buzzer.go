package peripheral

import (
	"io"
	"log"
	"sync"
	"time"
)

// BUZZER_PERIOD is the default interval between bells while buzzing.
const BUZZER_PERIOD = 250 * time.Millisecond

type buzzerMessage int

const (
	buzzerOn = buzzerMessage(iota)
	buzzerOff
	buzzerQuit
)

// Buzzer rings a terminal bell while the tone is on.
//
// The bell is written by a worker goroutine fed from a bounded command
// channel. Close stops and joins the worker.
type Buzzer struct {
	Verbose bool

	output  io.Writer
	period  time.Duration
	command chan buzzerMessage
	done    chan struct{}
	closer  sync.Once
	on      bool
	closed  bool
	err     error
}

// NewBuzzer starts a buzzer worker writing to 'output'.
// A zero 'period' selects BUZZER_PERIOD.
func NewBuzzer(output io.Writer, period time.Duration) (b *Buzzer) {
	if period <= 0 {
		period = BUZZER_PERIOD
	}

	b = &Buzzer{
		output:  output,
		period:  period,
		command: make(chan buzzerMessage, 8),
		done:    make(chan struct{}),
	}

	go b.worker()

	return
}

// worker owns the output until a quit message arrives.
func (b *Buzzer) worker() {
	defer close(b.done)

	ticker := time.NewTicker(b.period)
	defer ticker.Stop()

	on := false
	for {
		select {
		case msg := <-b.command:
			switch msg {
			case buzzerOn:
				on = true
				b.ring()
			case buzzerOff:
				on = false
			case buzzerQuit:
				return
			}
		case <-ticker.C:
			if on {
				b.ring()
			}
		}
	}
}

// ring writes one bell. The first write error silences the buzzer.
func (b *Buzzer) ring() {
	if b.err != nil {
		return
	}
	_, b.err = b.output.Write([]byte{'\a'})
	if b.err != nil && b.Verbose {
		log.Printf("buzzer: %v", b.err)
	}
}

// Buzz turns the tone on or off. Repeated calls with the same state are
// not sent to the worker.
func (b *Buzzer) Buzz(on bool) {
	if b.closed || b.on == on {
		return
	}
	b.on = on

	msg := buzzerOff
	if on {
		msg = buzzerOn
	}
	b.command <- msg
}

// Close stops the worker, waits for it to exit, and returns the first
// output error, if any.
func (b *Buzzer) Close() (err error) {
	b.closer.Do(func() {
		b.closed = true
		b.command <- buzzerQuit
	})
	<-b.done

	return b.err
}
