package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/EVAnunit1307/citysync/pkg/controller"
	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/placement"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The scene layer is served from its own dev origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// pointerEvent is one message from the scene layer. Move events carry
// the camera ray under the pointer; click events do too, projected
// server-side so both paths share one ground mapping.
type pointerEvent struct {
	Kind string  `json:"kind"` // "move" or "click"
	Ray  geo.Ray `json:"ray"`
}

// pointerFeedback answers a move: where the pointer landed on the
// ground and whether a building could go there.
type pointerFeedback struct {
	Kind   string           `json:"kind"` // "feedback"
	Point  geo.Point3D      `json:"point"`
	Active bool             `json:"active"`
	Result placement.Result `json:"result"`
}

// clickReply answers a click with the commit outcome.
type clickReply struct {
	Kind    string             `json:"kind"` // "commit"
	Point   geo.Point3D        `json:"point"`
	Outcome controller.Outcome `json:"outcome"`
}

// handlePointerSocket runs the live feedback loop: one message in, one
// message out, until the client goes away. Moves arrive at input-event
// frequency, so the per-move path stays allocation-light.
func (s *Server) handlePointerSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	s.logger.Info("pointer socket connected", "remote", conn.RemoteAddr())

	for {
		var ev pointerEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("pointer socket read failed", "err", err)
			}
			return
		}

		pt := ev.Ray.ProjectToGround()

		switch ev.Kind {
		case "move":
			s.mu.Lock()
			res, active := s.ctrl.PointerMove(pt.XZ())
			s.mu.Unlock()
			err = conn.WriteJSON(pointerFeedback{Kind: "feedback", Point: pt, Active: active, Result: res})
		case "click":
			s.mu.Lock()
			out, cerr := s.ctrl.Click(pt)
			s.mu.Unlock()
			if cerr != nil {
				s.logger.Error("click failed", "err", cerr)
				err = conn.WriteJSON(map[string]string{"kind": "error", "error": cerr.Error()})
				break
			}
			err = conn.WriteJSON(clickReply{Kind: "commit", Point: pt, Outcome: out})
		default:
			err = conn.WriteJSON(map[string]string{"kind": "error", "error": "unknown event kind " + ev.Kind})
		}
		if err != nil {
			s.logger.Warn("pointer socket write failed", "err", err)
			return
		}
	}
}
