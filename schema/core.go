package schema

import (
	"github.com/hupe1980/chunkio/harp"
	"github.com/hupe1980/chunkio/reader"
)

// Standard stream constructors shared by most dataset schemas. The
// numeric segment of each pattern is the harp register carrying the
// stream.

// Heartbeat creates a periodic heartbeat stream node.
func Heartbeat(decoder harp.Decoder) Node {
	return NewStream("Heartbeat", func(pattern string) reader.Reader {
		return reader.NewHeartbeat(pattern+"_8_*", decoder)
	})
}

// Encoder creates a magnetic encoder stream node.
func Encoder(decoder harp.Decoder) Node {
	return NewStream("Encoder", func(pattern string) reader.Reader {
		return reader.NewEncoder(pattern+"_90_*", decoder)
	})
}

// Position creates a 2D position tracking stream node.
func Position(decoder harp.Decoder) Node {
	return NewStream("Position", func(pattern string) reader.Reader {
		return reader.NewPosition(pattern+"_200_*", decoder)
	})
}

// Video creates a video frame metadata stream node.
func Video() Node {
	return NewStream("Video", func(pattern string) reader.Reader {
		return reader.NewVideo(pattern + "_*")
	})
}

// Pose creates a pose tracking stream node.
func Pose(decoder harp.Decoder, optFns ...reader.PoseOption) Node {
	return NewStream("Pose", func(pattern string) reader.Reader {
		return reader.NewPose(pattern+"_202_*", decoder, optFns...)
	})
}

// SubjectState creates a subject enter/exit metadata stream node.
func SubjectState() Node {
	return NewStream("SubjectState", func(pattern string) reader.Reader {
		return reader.NewSubject(pattern + "_SubjectState_*")
	})
}

// MessageLog creates a message log stream node.
func MessageLog() Node {
	return NewStream("MessageLog", func(pattern string) reader.Reader {
		return reader.NewLog(pattern + "_Log_*")
	})
}

// Metadata creates the per-epoch metadata device.
func Metadata() *Device {
	return NewDevice("Metadata", []Node{
		NewStream("Metadata", func(pattern string) reader.Reader {
			return reader.NewMetadata(pattern)
		}),
	})
}
