package graphmaps

// Observer receives the lifecycle notifications of a Universe.
//
// Notifications are synchronous callbacks fired by the mutating call
// itself. OnAdd, OnAddMany and OnBuild fire after the universe changed, so
// the new items are already live. OnErase, OnEraseMany and OnClear fire
// before, so the doomed items are still live and readable.
type Observer interface {
	OnAdd(item Item)
	OnAddMany(items []Item)
	OnErase(item Item)
	OnEraseMany(items []Item)
	OnBuild()
	OnClear()
}

// Subscription ties an Observer to the universe it is attached to.
type Subscription struct {
	u   *Universe
	obs Observer
}

// Attach registers obs. Observers are notified in attach order.
//
// An observer must be attached after the universe it indexes was created
// and detached before it is dropped.
func (u *Universe) Attach(obs Observer) *Subscription {
	s := &Subscription{u: u, obs: obs}
	u.subs = append(u.subs, s)
	return s
}

// Attached reports whether the subscription still receives notifications.
func (s *Subscription) Attached() bool {
	return s != nil && s.u != nil
}

// Detach stops notifications. It is safe to call more than once.
func (s *Subscription) Detach() {
	if s == nil || s.u == nil {
		return
	}
	subs := s.u.subs
	for i, other := range subs {
		if other == s {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = nil
			s.u.subs = subs[:len(subs)-1]
			break
		}
	}
	s.u = nil
}

// Observers returns the number of attached observers.
func (u *Universe) Observers() int {
	return len(u.subs)
}

func (u *Universe) notifyAdd(item Item) {
	for _, s := range u.subs {
		s.obs.OnAdd(item)
	}
}

func (u *Universe) notifyAddMany(items []Item) {
	for _, s := range u.subs {
		s.obs.OnAddMany(items)
	}
}

func (u *Universe) notifyErase(item Item) {
	for _, s := range u.subs {
		s.obs.OnErase(item)
	}
}

func (u *Universe) notifyEraseMany(items []Item) {
	for _, s := range u.subs {
		s.obs.OnEraseMany(items)
	}
}

func (u *Universe) notifyBuild() {
	for _, s := range u.subs {
		s.obs.OnBuild()
	}
}

func (u *Universe) notifyClear() {
	for _, s := range u.subs {
		s.obs.OnClear()
	}
}
