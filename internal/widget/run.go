package widget

import "context"

// Run draws f on s and handles events until the field is accepted or
// cancelled, or ctx is done. An EventInterrupt posted to s forces a redraw.
func Run(ctx context.Context, s Screen, f *Field) (Action, error) {
	if err := s.Init(); err != nil {
		return ActionNone, err
	}
	defer s.Shutdown()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.PostEvent(Event{Type: EventInterrupt})
		case <-done:
		}
	}()

	for {
		s.Clear()
		f.Draw(s)
		s.Show()

		ev := s.PollEvent()
		switch ev.Type {
		case EventInterrupt:
			if err := ctx.Err(); err != nil {
				return ActionCancel, err
			}
		case EventKey:
			if a := f.HandleEvent(ev); a != ActionNone {
				return a, nil
			}
		}
	}
}
