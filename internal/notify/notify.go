// Package notify publishes a message on a ZeroMQ PUB socket for every
// statistics file that is written, so monitoring clients can fetch new plots
// without polling the output directory.
package notify

// Each message has two frames: a tag naming the file kind, then a JSON body.

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"time"

	"github.com/MWATelescope/mwaxstats"
	zmq "github.com/pebbe/zmq4"
)

// FileMessage is the JSON body announcing one file.
type FileMessage struct {
	RunID    string    `json:"run_id"`
	Host     string    `json:"host"`
	Path     string    `json:"path"`
	Filename string    `json:"filename"`
	Kind     string    `json:"kind"`
	Records  int       `json:"records"`
	Size     int64     `json:"size"`
	SHA256   string    `json:"sha256"`
	Written  time.Time `json:"written"`
}

// update carries the messages to be published.
type update struct {
	tag     string
	message []byte
}

// Publisher forwards announcements to a ZMQ publisher socket. Its methods are
// safe for concurrent use; only its own goroutine touches the socket.
type Publisher struct {
	Host     string
	socket   *zmq.Socket
	messages chan update
	done     sync.WaitGroup
	closing  sync.Once
}

// NewPublisher binds a PUB socket at addr, e.g. "tcp://*:5590".
func NewPublisher(addr string) (*Publisher, error) {
	socket, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, err
	}
	if err := socket.SetLinger(time.Second); err != nil {
		socket.Close()
		return nil, err
	}
	if err := socket.Bind(addr); err != nil {
		socket.Close()
		return nil, err
	}
	p := &Publisher{
		Host:     mwaxstats.Build.Host,
		socket:   socket,
		messages: make(chan update, 64),
	}
	p.done.Add(1)
	go p.run()
	return p, nil
}

func (p *Publisher) run() {
	defer p.done.Done()
	for u := range p.messages {
		if _, err := p.socket.SendMessage(u.tag, u.message); err != nil {
			mwaxstats.Warnf("notify: sending %s message: %v", u.tag, err)
		}
	}
}

// Announce publishes msg with its kind as the tag.
func (p *Publisher) Announce(msg *FileMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	p.messages <- update{tag: msg.Kind, message: body}
	return nil
}

// FileWritten announces product as a file of runID.
func (p *Publisher) FileWritten(runID string, product *mwaxstats.FileProduct) {
	msg := &FileMessage{
		RunID:    runID,
		Host:     p.Host,
		Path:     product.Path,
		Filename: filepath.Base(product.Path),
		Kind:     product.Kind,
		Records:  product.Records,
		Size:     product.Size,
		SHA256:   product.SHA256,
		Written:  time.Now().UTC(),
	}
	if err := p.Announce(msg); err != nil {
		mwaxstats.Warnf("notify: %v", err)
	}
}

// Close sends any queued messages and closes the socket. Announce must not be
// called after Close.
func (p *Publisher) Close() error {
	var err error
	p.closing.Do(func() {
		close(p.messages)
		p.done.Wait()
		err = p.socket.Close()
	})
	return err
}
