package media

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		path    string
		want    Type
		wantErr bool
	}{
		{path: "trica.png", want: Type{KindImage, "image/png"}},
		{path: "/a/b/PHOTO.JPEG", want: Type{KindImage, "image/jpeg"}},
		{path: "clip.mov", want: Type{KindVideo, "video/quicktime"}},
		{path: "audio.wav", want: Type{KindAudio, "audio/wav"}},
		{path: "document.txt", want: Type{KindDocument, "text/plain"}},
		{path: "archive.zip", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Detect(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Detect(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Detect(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("a.webp") {
		t.Error("IsImage(a.webp) = false, want true")
	}
	if IsImage("a.mp4") || IsImage("a") {
		t.Error("IsImage() accepted a non-image")
	}
}
