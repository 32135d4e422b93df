package notification

import "context"

// Dispatch is one request to the external push primitive. The primitive
// owns the idempotency ledger: sending the same EventID twice for the same
// NotificationKey must not double-deliver.
type Dispatch struct {
	NotificationKey     string
	EventID             string
	UserIDs             []string
	Title               string
	Body                string
	Data                map[string]string
	GroupingKey         string
	SkipPreferenceCheck bool
	BadgeCount          *int
}

// Receipt summarizes one dispatch call.
type Receipt struct {
	Accepted int
	Failed   int
}

func (r Receipt) Add(other Receipt) Receipt {
	return Receipt{
		Accepted: r.Accepted + other.Accepted,
		Failed:   r.Failed + other.Failed,
	}
}

// Dispatcher is the external dispatch-and-log primitive. Callers must not
// invoke it with an empty UserIDs list.
type Dispatcher interface {
	Send(ctx context.Context, item Dispatch) (Receipt, error)
}
