package form

// Subscription is an active registration created by Subscribe. Call Close to
// stop receiving snapshots.
type Subscription struct {
	id       int
	callback func(Snapshot)
	form     *Form
}

// Subscribe registers fn to receive a snapshot after every entry point
// completes. Calls made from inside validators are reported once, with the
// outer call. Mutations made from inside a callback are applied but do not
// notify again; read the form directly to observe them.
func (f *Form) Subscribe(fn func(Snapshot)) *Subscription {
	f.nextSubID++
	sub := &Subscription{id: f.nextSubID, callback: fn, form: f}
	if fn != nil {
		f.subscribers = append(f.subscribers, sub)
	}
	return sub
}

// Close removes the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil || s.form == nil {
		return
	}
	subs := s.form.subscribers
	for i, sub := range subs {
		if sub.id == s.id {
			s.form.subscribers = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	s.form = nil
}

func (f *Form) publish() {
	if f.publishing || len(f.subscribers) == 0 {
		return
	}
	f.publishing = true
	defer func() { f.publishing = false }()
	snap := f.Snapshot()
	subs := append([]*Subscription(nil), f.subscribers...)
	for _, sub := range subs {
		sub.callback(snap)
	}
}
