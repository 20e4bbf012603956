package battle

import "fmt"

func (b *Battle) logf(format string, args ...any) {
	b.emit(fmt.Sprintf(format, args...))
}

func (b *Battle) emit(line string) {
	b.state.Log = append(b.state.Log, line)
	if b.logSink != nil {
		b.logSink(line)
	}
}

func statusMessage(name string, status Status) string {
	switch status {
	case StatusBurn:
		return name + " was burned!"
	case StatusPoison:
		return name + " was poisoned!"
	case StatusParalysis:
		return name + " is paralyzed! It may be unable to move!"
	case StatusSleep:
		return name + " fell asleep!"
	case StatusFreeze:
		return name + " was frozen solid!"
	}
	return name + " is affected by " + string(status) + "!"
}

func stageMessage(name string, stat Stat, requested, applied int) string {
	switch {
	case applied == 0 && requested > 0:
		return fmt.Sprintf("%s's %s won't go any higher!", name, stat)
	case applied == 0:
		return fmt.Sprintf("%s's %s won't go any lower!", name, stat)
	case applied >= 2:
		return fmt.Sprintf("%s's %s rose sharply!", name, stat)
	case applied > 0:
		return fmt.Sprintf("%s's %s rose!", name, stat)
	case applied <= -2:
		return fmt.Sprintf("%s's %s harshly fell!", name, stat)
	}
	return fmt.Sprintf("%s's %s fell!", name, stat)
}
