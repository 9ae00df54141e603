package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize  = 2048
	mongoBatchSize  = 50
	mongoFlushEvery = 2 * time.Second
)

// LogDocument is the shape stored in the log collection.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// docWriter is the part of *mongo.Collection the handler needs.
type docWriter interface {
	InsertMany(ctx context.Context, docs []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// mongoSink owns the queue and the background writer shared by every
// handler derived through WithAttrs/WithGroup.
type mongoSink struct {
	col     docWriter
	client  *mongo.Client
	queue   chan LogDocument
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
	dropped atomic.Int64
}

// MongoHandler is an slog.Handler that ships records to MongoDB in batches.
// Handle never blocks: when the queue is full the record is dropped and
// counted.
type MongoHandler struct {
	sink   *mongoSink
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

// NewMongoHandler connects to uri and writes into db.collection.
// Close must be called to flush the queue.
func NewMongoHandler(ctx context.Context, uri, db, collection string, level slog.Leveler) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(4))
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "time", Value: -1}}})

	h := newMongoHandler(col, level)
	h.sink.client = client
	return h, nil
}

func newMongoHandler(col docWriter, level slog.Leveler) *MongoHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	s := &mongoSink{
		col:     col,
		queue:   make(chan LogDocument, mongoQueueSize),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return &MongoHandler{sink: s, level: level}
}

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := LogDocument{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}

	add := func(key string, v slog.Value) {
		if key == "request_id" {
			doc.RequestID = v.String()
			return
		}
		v = v.Resolve()
		if err, ok := v.Any().(error); ok && v.Kind() == slog.KindAny {
			doc.Attrs[key] = err.Error()
			return
		}
		doc.Attrs[key] = v.Any()
	}
	// Bound attrs were prefixed when they were attached.
	for _, a := range h.attrs {
		add(a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(h.prefix+a.Key, a.Value)
		return true
	})

	select {
	case h.sink.queue <- doc:
	default:
		h.sink.dropped.Add(1)
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if a.Key != "request_id" {
			a.Key = h.prefix + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// Dropped reports how many records were discarded because the queue was full.
func (h *MongoHandler) Dropped() int64 {
	return h.sink.dropped.Load()
}

// Close flushes queued records and disconnects. Safe to call twice.
func (h *MongoHandler) Close() {
	s := h.sink
	s.once.Do(func() {
		close(s.stop)
		<-s.stopped
		if s.client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.client.Disconnect(ctx)
		}
	})
}

func (s *mongoSink) run() {
	defer close(s.stopped)

	ticker := time.NewTicker(mongoFlushEvery)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// A failed insert loses the batch; logging must not feed back into itself.
		_, _ = s.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stop:
			for {
				select {
				case doc := <-s.queue:
					batch = append(batch, doc)
				default:
					flush()
					return
				}
			}
		}
	}
}
