package pose

// StandingPose returns a full set of landmarks for a person standing with
// arms at their sides, facing the camera.
func StandingPose() []Landmark {
	lm := make([]Landmark, NumLandmarks)
	set := func(i int, x, y float64) {
		lm[i] = Landmark{X: x, Y: y, Visibility: 0.99}
	}

	// Head
	set(Nose, 0.50, 0.15)
	set(LeftEyeInner, 0.51, 0.13)
	set(LeftEye, 0.52, 0.13)
	set(LeftEyeOuter, 0.53, 0.13)
	set(RightEyeInner, 0.49, 0.13)
	set(RightEye, 0.48, 0.13)
	set(RightEyeOuter, 0.47, 0.13)
	set(LeftEar, 0.55, 0.14)
	set(RightEar, 0.45, 0.14)
	set(MouthLeft, 0.52, 0.18)
	set(MouthRight, 0.48, 0.18)

	// Arms down
	set(LeftShoulder, 0.60, 0.28)
	set(RightShoulder, 0.40, 0.28)
	set(LeftElbow, 0.63, 0.42)
	set(RightElbow, 0.37, 0.42)
	set(LeftWrist, 0.64, 0.55)
	set(RightWrist, 0.36, 0.55)
	set(LeftPinky, 0.65, 0.58)
	set(RightPinky, 0.35, 0.58)
	set(LeftIndex, 0.64, 0.59)
	set(RightIndex, 0.36, 0.59)
	set(LeftThumb, 0.63, 0.57)
	set(RightThumb, 0.37, 0.57)

	// Legs
	set(LeftHip, 0.56, 0.58)
	set(RightHip, 0.44, 0.58)
	set(LeftKnee, 0.57, 0.75)
	set(RightKnee, 0.43, 0.75)
	set(LeftAnkle, 0.57, 0.92)
	set(RightAnkle, 0.43, 0.92)
	set(LeftHeel, 0.58, 0.94)
	set(RightHeel, 0.42, 0.94)
	set(LeftFootIndex, 0.55, 0.96)
	set(RightFootIndex, 0.45, 0.96)

	return lm
}

// ReachingPose returns StandingPose with the left wrist moved to (x, y).
func ReachingPose(x, y float64) []Landmark {
	lm := StandingPose()
	lm[LeftWrist] = Landmark{X: x, Y: y, Visibility: 0.99}
	return lm
}

// UpperBodyPose returns landmarks truncated before the wrists, as delivered
// when the arms are out of frame.
func UpperBodyPose() []Landmark {
	return StandingPose()[:LeftWrist]
}
