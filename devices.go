package truegate

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DeviceType enumerates the smart-home device kinds the portal renders.
type DeviceType = string

const (
	DeviceLight  DeviceType = "light"
	DeviceLock   DeviceType = "lock"
	DeviceCamera DeviceType = "camera"
	DeviceSensor DeviceType = "sensor"
	DeviceSwitch DeviceType = "switch"
)

// DeviceStatus is the connectivity state shown on device tiles.
type DeviceStatus = string

const (
	StatusOnline  DeviceStatus = "online"
	StatusOffline DeviceStatus = "offline"
	StatusWarning DeviceStatus = "warning"
)

// Device is one smart-home endpoint on the user dashboard. State applies
// to toggleable devices (lights, locks, switches); Value and Unit apply to
// sensors; FeedURL applies to cameras.
type Device struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       DeviceType   `json:"type"`
	Status     DeviceStatus `json:"status"`
	State      *bool        `json:"state,omitempty"`
	Value      *float64     `json:"value,omitempty"`
	Unit       string       `json:"unit,omitempty"`
	LastUpdate time.Time    `json:"lastUpdate"`
	Room       string       `json:"room,omitempty"`
	FeedURL    string       `json:"feedUrl,omitempty"`
}

// AlertType categorizes dashboard alerts.
type AlertType = string

const (
	AlertMotion   AlertType = "motion"
	AlertAccess   AlertType = "access"
	AlertSystem   AlertType = "system"
	AlertSecurity AlertType = "security"
)

// AlertSeverity orders alerts on the panel.
type AlertSeverity = string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// Alert is one entry in the dashboard alert panel.
type Alert struct {
	ID           string        `json:"id"`
	Type         AlertType     `json:"type"`
	Message      string        `json:"message"`
	Timestamp    time.Time     `json:"timestamp"`
	Severity     AlertSeverity `json:"severity"`
	DeviceID     string        `json:"deviceId,omitempty"`
	Acknowledged bool          `json:"acknowledged"`
}

// SeedDevices returns the demo device catalog the dashboard ships with
// while no real device backend exists.
func SeedDevices(now time.Time) []Device {
	return []Device{
		{ID: "front-door-camera", Name: "Front Door Camera", Type: DeviceCamera, Status: StatusOnline, LastUpdate: now, Room: "Entrance", FeedURL: "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4"},
		{ID: "back-yard-camera", Name: "Back Yard Camera", Type: DeviceCamera, Status: StatusOnline, LastUpdate: now, Room: "Backyard", FeedURL: "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4"},
		{ID: "living-room-light", Name: "Living Room Light", Type: DeviceLight, Status: StatusOnline, State: boolPtr(true), LastUpdate: now, Room: "Living Room"},
		{ID: "bedroom-light", Name: "Bedroom Light", Type: DeviceLight, Status: StatusOnline, State: boolPtr(false), LastUpdate: now, Room: "Bedroom"},
		{ID: "kitchen-light", Name: "Kitchen Light", Type: DeviceLight, Status: StatusOnline, State: boolPtr(true), LastUpdate: now, Room: "Kitchen"},
		{ID: "front-door-lock", Name: "Front Door Lock", Type: DeviceLock, Status: StatusOnline, State: boolPtr(true), LastUpdate: now, Room: "Entrance"},
		{ID: "back-door-lock", Name: "Back Door Lock", Type: DeviceLock, Status: StatusOnline, State: boolPtr(false), LastUpdate: now, Room: "Backyard"},
		{ID: "garage-door", Name: "Garage Door", Type: DeviceLock, Status: StatusOnline, State: boolPtr(true), LastUpdate: now, Room: "Garage"},
		{ID: "living-room-temp", Name: "Living Room Temperature", Type: DeviceSensor, Status: StatusOnline, Value: floatPtr(72), Unit: "°F", LastUpdate: now, Room: "Living Room"},
		{ID: "bedroom-temp", Name: "Bedroom Temperature", Type: DeviceSensor, Status: StatusOnline, Value: floatPtr(68), Unit: "°F", LastUpdate: now, Room: "Bedroom"},
	}
}

// FilterByRoom returns the devices assigned to a room.
func FilterByRoom(devices []Device, room string) []Device {
	var out []Device
	for _, d := range devices {
		if d.Room == room {
			out = append(out, d)
		}
	}
	return out
}

// FilterByType returns the devices of one kind.
func FilterByType(devices []Device, deviceType DeviceType) []Device {
	var out []Device
	for _, d := range devices {
		if d.Type == deviceType {
			out = append(out, d)
		}
	}
	return out
}

// UnacknowledgedAlerts returns the alerts still needing attention.
func UnacknowledgedAlerts(alerts []Alert) []Alert {
	var out []Alert
	for _, a := range alerts {
		if !a.Acknowledged {
			out = append(out, a)
		}
	}
	return out
}

// DeviceSimulator drives the periodic device-value jitter the dashboard
// shows while no real device backend exists. It is the only background
// timer in the client and lives entirely outside the session core.
type DeviceSimulator struct {
	mu       sync.Mutex
	devices  []Device
	interval time.Duration
	rng      *rand.Rand
	now      func() time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewDeviceSimulator(devices []Device, interval time.Duration) *DeviceSimulator {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &DeviceSimulator{
		devices:  append([]Device(nil), devices...),
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// WithClock injects a custom clock (useful for tests).
func (s *DeviceSimulator) WithClock(clock func() time.Time) *DeviceSimulator {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Start begins ticking until the context is done or Stop is called.
// Starting an already-running simulator is a no-op.
func (s *DeviceSimulator) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Refresh()
			}
		}
	}()
}

// Stop halts the ticker and waits for the loop to exit.
func (s *DeviceSimulator) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Refresh performs one simulation pass: sensors drift a little, timestamps
// advance, and occasionally a device blips into a warning state.
func (s *DeviceSimulator) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for i := range s.devices {
		d := &s.devices[i]
		if d.Type == DeviceSensor && d.Value != nil {
			drift := (s.rng.Float64() - 0.5) * 2 // +-1 per pass
			*d.Value += drift
		}
		if s.rng.Intn(50) == 0 {
			d.Status = StatusWarning
		} else if d.Status == StatusWarning {
			d.Status = StatusOnline
		}
		d.LastUpdate = now
	}
}

// Devices returns a copy of the current simulated catalog.
func (s *DeviceSimulator) Devices() []Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Device, len(s.devices))
	copy(out, s.devices)
	for i := range out {
		if s.devices[i].State != nil {
			out[i].State = boolPtr(*s.devices[i].State)
		}
		if s.devices[i].Value != nil {
			out[i].Value = floatPtr(*s.devices[i].Value)
		}
	}
	return out
}

// SetDeviceState flips a toggleable device and reports whether it existed.
func (s *DeviceSimulator) SetDeviceState(id string, on bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.devices {
		if s.devices[i].ID == id && s.devices[i].State != nil {
			s.devices[i].State = boolPtr(on)
			s.devices[i].LastUpdate = s.now()
			return true
		}
	}
	return false
}

func boolPtr(v bool) *bool       { return &v }
func floatPtr(v float64) *float64 { return &v }
