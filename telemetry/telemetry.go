// Package telemetry republishes world snapshots to an external viewer over
// a websocket: gorilla/mux routing, a gorilla/websocket upgrade, and a
// throttled publish loop. It owns no simulation policy; the visual viewer
// is an external collaborator and this package is only the plumbing that
// feeds it.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fieldctl/robot"
	"fieldctl/worldmodel"
)

// publishResolution throttles outbound pushes independent of how fast
// ticks arrive.
const publishResolution = 200 * time.Millisecond

const (
	writeWait        = 1 * time.Second
	closeGracePeriod = 1 * time.Second
)

// ObjectKind identifies what a ViewerObject draws: a robot, a point, or a
// segment.
type ObjectKind string

const (
	ObjectRobot   ObjectKind = "robot"
	ObjectPoint   ObjectKind = "point"
	ObjectSegment ObjectKind = "segment"
)

// ViewerObject is one drawable item in a Snapshot: a robot (position +
// orientation), a point, or a segment (X,Y to X2,Y2), tagged by color.
type ViewerObject struct {
	Kind        ObjectKind `json:"kind"`
	Color       string     `json:"color"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	X2          float64    `json:"x2"`
	Y2          float64    `json:"y2"`
	Orientation float64    `json:"orientation"`
}

// Snapshot is one tick's worth of drawable world state.
type Snapshot struct {
	Objects []ViewerObject `json:"objects"`
}

// BuildSnapshot renders the ball and every known ally/enemy as
// ViewerObjects. It takes no lock beyond what World's own accessors
// already take, and is safe to call from the control loop's tick.
func BuildSnapshot(w *worldmodel.World) Snapshot {
	objects := []ViewerObject{{
		Kind:  ObjectPoint,
		Color: "orange",
		X:     w.Ball.Position().X,
		Y:     w.Ball.Position().Y,
	}}

	for _, a := range w.Allies() {
		objects = append(objects, robotObject(&a.Base, w.Color.String()))
	}
	for _, e := range w.Enemies() {
		objects = append(objects, robotObject(&e.Base, w.Color.Opponent().String()))
	}
	return Snapshot{Objects: objects}
}

func robotObject(b *robot.Base, color string) ViewerObject {
	pos := b.Position()
	return ViewerObject{
		Kind:        ObjectRobot,
		Color:       color,
		X:           pos.X,
		Y:           pos.Y,
		Orientation: b.Orientation(),
	}
}

var upgrader = websocket.Upgrader{}

// Broadcaster serves an index page and a /ws endpoint that streams
// Snapshots read from its input channel to whatever viewer connects.
type Broadcaster struct {
	addr      string
	snapshots <-chan Snapshot
	logger    *zap.SugaredLogger
}

// NewBroadcaster returns a Broadcaster that will listen on addr once Run
// is called, publishing whatever arrives on snapshots.
func NewBroadcaster(addr string, snapshots <-chan Snapshot, logger *zap.SugaredLogger) *Broadcaster {
	return &Broadcaster{addr: addr, snapshots: snapshots, logger: logger}
}

// Run serves the index page and websocket endpoint until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) error {
	router := mux.NewRouter()
	router.HandleFunc("/", b.serveIndex)
	router.HandleFunc("/ws", b.serveWebsocket)

	srv := &http.Server{Addr: b.addr, Handler: router}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (b *Broadcaster) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(indexHTML))
}

func (b *Broadcaster) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if b.logger != nil {
			b.logger.Warnw("telemetry websocket upgrade failed", "err", err)
		}
		return
	}
	defer b.closeWebsocket(ws)
	b.publish(ws)
}

// publish pushes every snapshot to ws, dropping any that arrive faster
// than publishResolution.
func (b *Broadcaster) publish(ws *websocket.Conn) {
	last := time.Now()
	for snap := range b.snapshots {
		if time.Since(last) < publishResolution {
			continue
		}
		last = time.Now()

		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := ws.WriteJSON(snap); err != nil {
			return
		}
	}
}

func (b *Broadcaster) closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	_ = ws.Close()
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>fieldctl telemetry</title></head>
<body>
<p>Connect a viewer to <code>/ws</code> for a JSON stream of field snapshots.</p>
</body>
</html>`
