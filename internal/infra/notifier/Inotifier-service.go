package notifier

// INotifier alerts the operations team that a party entered the handover
// queue. Failures are for the caller to log and ignore: notification is
// fire-and-forget by contract and never blocks an escalation.
type INotifier interface {
	Notify(waID string, position int) error
}
