package server

import (
	annocmp "github.com/annotools/go-annocmp"
	"github.com/annotools/go-annocmp/render"
	"github.com/annotools/go-annocmp/viewport"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// clientMessage is one frame from the browser.  Type selects which of the
// optional payloads is present
type clientMessage struct {
	// Type is one of "event", "select_image" or "options"
	Type string `json:"type"`
	// Event is a raw pointer/scroll/resize record
	Event *viewport.Event `json:"event,omitempty"`
	// ImageID selects the image to view
	ImageID int `json:"image_id,omitempty"`
	// KeepPan preserves the pan offset across an image switch
	KeepPan bool `json:"keep_pan,omitempty"`
	// Options toggles overlay visibility flags
	Options *render.Options `json:"options,omitempty"`
}

// serverMessage is one frame to the browser
type serverMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// wsSession is the per connection view state.  Each open connection owns
// its viewport, matching the one-instance-per-view lifecycle of the
// original widget
type wsSession struct {
	server  *Server
	conn    *websocket.Conn
	state   *viewport.State
	opts    render.Options
	imageID int
	machine []*annocmp.Annotation
	human   []*annocmp.Annotation
}

// handleWebSocket upgrades the connection and runs the session loop, one
// overlay refresh per state changing message
func (s *Server) handleWebSocket(c *gin.Context) {

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		s.logger.WithError(err).Error("failed to upgrade websocket connection")
		return
	}

	defer conn.Close()

	s.logger.WithField("client_ip", c.ClientIP()).Info("viewer client connected")

	sess := &wsSession{
		server: s,
		conn:   conn,
		state:  viewport.NewState(),
		opts:   render.DefaultOptions(),
	}

	for {

		var msg clientMessage

		if err := conn.ReadJSON(&msg); err != nil {

			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).Warn("websocket read failed")
			}

			return
		}

		if err := sess.handle(msg); err != nil {
			s.logger.WithError(err).Warn("websocket write failed")
			return
		}
	}
}

// handle applies one client message and pushes an overlay refresh when the
// view changed
func (sess *wsSession) handle(msg clientMessage) error {

	switch msg.Type {

	case "select_image":
		return sess.selectImage(msg.ImageID, msg.KeepPan)

	case "options":
		if msg.Options != nil {
			sess.opts = *msg.Options
		}
		return sess.sendOverlay()

	case "event":
		if msg.Event == nil {
			return nil
		}
		if sess.state.HandleEvent(*msg.Event) {
			return sess.sendOverlay()
		}
		return nil
	}

	return sess.send(serverMessage{Type: "error", Data: "unknown message type"})
}

// selectImage switches the session to another image, resetting the
// viewport unless the client asked to keep its pan offset
func (sess *wsSession) selectImage(imageID int, keepPan bool) error {

	rec := sess.server.imageRecord(imageID)

	if rec == nil {
		return sess.send(serverMessage{Type: "error", Data: "unknown image id"})
	}

	sess.imageID = imageID
	sess.machine, sess.human = sess.server.annotationsFor(imageID)
	sess.state.SetImageSize(viewport.Size{
		W: float64(rec.Width),
		H: float64(rec.Height),
	}, keepPan)

	sess.server.logger.WithFields(logrus.Fields{
		"image_id": imageID,
		"machine":  len(sess.machine),
		"human":    len(sess.human),
	}).Debug("image selected")

	if err := sess.send(serverMessage{Type: "image", Data: rec}); err != nil {
		return err
	}

	return sess.sendOverlay()
}

// sendOverlay renders the current annotations through the session viewport
// and pushes the primitive list
func (sess *wsSession) sendOverlay() error {

	prims := render.Overlay(sess.machine, sess.human, sess.state, sess.opts)

	return sess.send(serverMessage{Type: "overlay", Data: gin.H{
		"image_id":   sess.imageID,
		"scale":      sess.state.Scale,
		"primitives": prims,
	}})
}

func (sess *wsSession) send(msg serverMessage) error {
	return sess.conn.WriteJSON(msg)
}
