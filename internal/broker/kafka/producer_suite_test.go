package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/RouteBox/internal/broker/messages"
	"github.com/BearBump/RouteBox/internal/services/routes"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type ProducerSuite struct {
	suite.Suite
	wm   *writerMock
	p    *Producer
	hook *routes.EventHook
}

func (s *ProducerSuite) SetupTest() {
	s.wm = &writerMock{}
	s.p = newProducerWithWriter(s.wm)
	s.hook = routes.NewEventHook(s.p, "")
}

func (s *ProducerSuite) TestNewProducer_NotNil() {
	p := NewProducer([]string{"localhost:0"})
	s.Require().NotNil(p)
}

func (s *ProducerSuite) TestAfterSave_WritesOneRouteEvent() {
	s.wm.
		On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 || msgs[0].Topic != messages.TopicRouteEvents || string(msgs[0].Key) != "r1" {
				return false
			}
			var evt messages.RouteEvent
			if err := json.Unmarshal(msgs[0].Value, &evt); err != nil {
				return false
			}
			return evt.RouteID == "r1" && evt.NewStatus == "IN_PROGRESS" && evt.PreviousStatus == "PLANNED"
		})).
		Return(nil).
		Once()

	s.Require().NoError(s.hook.AfterSave(context.Background(), startedMutation(time.Now().UTC())))
	s.wm.AssertExpectations(s.T())
}

func (s *ProducerSuite) TestAfterSave_ErrorWrapped() {
	want := errors.New("leader not available")
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).Return(want).Once()

	err := s.hook.AfterSave(context.Background(), startedMutation(time.Now().UTC()))
	s.Require().Error(err)
	s.Require().Contains(err.Error(), "kafka publish to "+messages.TopicRouteEvents)
	s.Require().ErrorIs(err, want)
	s.wm.AssertExpectations(s.T())
}

func TestProducerSuite(t *testing.T) {
	suite.Run(t, new(ProducerSuite))
}
