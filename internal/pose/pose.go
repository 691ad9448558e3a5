// Package pose defines the body landmarks delivered by a landmark source and
// the MediaPipe skeleton that joins them.
package pose

// Pose landmark indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark is a single body keypoint in normalized frame coordinates.
// X and Y are in [0,1]; Z is relative depth.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Result is the output of one Detect call.
type Result struct {
	PoseLandmarks []Landmark `json:"pose_landmarks"`
}

// Detected reports whether the result carries any landmarks.
func (r *Result) Detected() bool {
	return r != nil && r.PoseLandmarks != nil
}

// At returns the landmark at index i if it was delivered and its visibility
// is at least minVisibility.
func (r *Result) At(i int, minVisibility float64) (Landmark, bool) {
	if !r.Detected() || i < 0 || i >= len(r.PoseLandmarks) {
		return Landmark{}, false
	}
	lm := r.PoseLandmarks[i]
	if lm.Visibility < minVisibility {
		return Landmark{}, false
	}
	return lm, true
}

// Connection is a pair of landmark indices joined by a skeleton line.
type Connection struct {
	From int
	To   int
}

// PoseConnections is the MediaPipe POSE_CONNECTIONS skeleton.
var PoseConnections = []Connection{
	{0, 1}, {1, 2}, {2, 3}, {3, 7}, {0, 4}, {4, 5}, {5, 6}, {6, 8},
	{9, 10},
	{11, 12}, {11, 13}, {13, 15}, {15, 17}, {15, 19}, {15, 21}, {17, 19},
	{12, 14}, {14, 16}, {16, 18}, {16, 20}, {16, 22}, {18, 20},
	{11, 23}, {12, 24}, {23, 24},
	{23, 25}, {24, 26}, {25, 27}, {26, 28},
	{27, 29}, {28, 30}, {29, 31}, {30, 32}, {27, 31}, {28, 32},
}
