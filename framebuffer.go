package glwindow

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"sort"
	"strings"

	gl "github.com/go-gl/gl/all-core/gl"
	xdraw "golang.org/x/image/draw"
)

// attachment is one readable channel of a render target, registered at
// framebuffer construction time and queried by name. The read function
// owns all GL state it needs, including binding the source buffer, so
// channel lookup and cropping stay free of GL calls.
type attachment struct {
	read func(area Rect) image.Image
}

// Framebuffer is a render target with named readable channels. The zero
// buffer id stands for the window's default framebuffer.
type Framebuffer struct {
	fbo      uint32
	size     Size
	channels map[string]attachment
	realloc  func(size Size)
}

// defaultFramebuffer wraps the window framebuffer, which exposes the color
// and depth channels only.
func defaultFramebuffer(size Size) *Framebuffer {
	fb := &Framebuffer{size: size}
	fb.channels = map[string]attachment{
		"color": {read: fb.reader(gl.BACK, readRGBA)},
		"depth": {read: fb.reader(0, readDepth)},
	}
	return fb
}

// reader wraps a pixel-transfer function with the framebuffer and read
// buffer binding it expects. buffer 0 marks a non-color channel such as
// depth, which has no read buffer to select.
func (fb *Framebuffer) reader(buffer uint32, read func(area Rect) image.Image) func(area Rect) image.Image {
	return func(area Rect) image.Image {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
		defer gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
		if buffer != 0 {
			gl.ReadBuffer(buffer)
		}
		return read(area)
	}
}

// CreateFramebuffer builds the standard offscreen target: a color channel
// (RGBA8), an objectid channel (RG16UI, object id and sub-index per pixel)
// and a depth channel. The texture storage is tied to the context and
// released with it.
func CreateFramebuffer(ctx *Context, size Size) (*Framebuffer, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	color := CreateEmptyTexture(size, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color.ID(), 0)
	objectid := CreateEmptyTexture(size, gl.RG16UI, gl.RG_INTEGER, gl.UNSIGNED_SHORT)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT1, gl.TEXTURE_2D, objectid.ID(), 0)
	depth := CreateEmptyTexture(size, gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, depth.ID(), 0)

	drawBuffers := []uint32{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT1}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		for _, t := range []*Texture{color, objectid, depth} {
			t.Close()
		}
		gl.DeleteFramebuffers(1, &fbo)
		return nil, fmt.Errorf("framebuffer incomplete: status 0x%x", status)
	}

	fb := &Framebuffer{
		fbo:  fbo,
		size: size,
	}
	fb.channels = map[string]attachment{
		"color":    {read: fb.reader(gl.COLOR_ATTACHMENT0, readRGBA)},
		"objectid": {read: fb.reader(gl.COLOR_ATTACHMENT1, readObjectID)},
		"depth":    {read: fb.reader(0, readDepth)},
	}
	fb.realloc = func(size Size) {
		color.resize(size, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE)
		objectid.resize(size, gl.RG16UI, gl.RG_INTEGER, gl.UNSIGNED_SHORT)
		depth.resize(size, gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT)
	}
	ctx.Track(color)
	ctx.Track(objectid)
	ctx.Track(depth)
	ctx.OnDestroy(func() {
		gl.DeleteFramebuffers(1, &fbo)
	})
	return fb, nil
}

func (fb *Framebuffer) Size() Size {
	return fb.size
}

// Resize adapts the render target to a new framebuffer size, discarding
// the current contents.
func (fb *Framebuffer) Resize(size Size) {
	if size == fb.size {
		return
	}
	fb.size = size
	if fb.realloc != nil {
		fb.realloc(size)
	}
}

func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
}

func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ChannelNames returns the sorted names of the readable channels.
func (fb *Framebuffer) ChannelNames() []string {
	names := make([]string, 0, len(fb.channels))
	for name := range fb.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadChannel reads the named channel cropped to area (clamped to the
// buffer bounds) and flipped so the top image row is the top of the
// screen. An unknown name is an error listing the valid channel set; no
// partial image is returned.
func (fb *Framebuffer) ReadChannel(name string, area Rect) (image.Image, error) {
	att, ok := fb.channels[name]
	if !ok {
		return nil, fmt.Errorf("unknown framebuffer channel %q, valid channels: %s",
			name, strings.Join(fb.ChannelNames(), ", "))
	}
	return att.read(area.Intersect(Rect{Max: fb.size})), nil
}

// ObjectIDAt reads the objectid channel at a single framebuffer pixel.
// Reports false when the buffer has no objectid channel or p lies outside.
func (fb *Framebuffer) ObjectIDAt(p Point) (ObjectID, bool) {
	if _, ok := fb.channels["objectid"]; !ok || !p.In(Rect{Max: fb.size}) {
		return NoObject, false
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	defer gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT1)
	var px [2]uint16
	gl.ReadPixels(int32(p.X), int32(p.Y), 1, 1, gl.RG_INTEGER, gl.UNSIGNED_SHORT, gl.Ptr(px[:]))
	return ObjectID{ID: int(px[0]), Index: int(px[1])}, true
}

func readRGBA(area Rect) image.Image {
	w, h := area.Dx(), area.Dy()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	buf := make([]uint8, w*h*4)
	gl.ReadPixels(int32(area.Min.X), int32(area.Min.Y), int32(w), int32(h),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	copyRowsFlipped(img.Pix, img.Stride, buf, w*4, h)
	return img
}

func readDepth(area Rect) image.Image {
	w, h := area.Dx(), area.Dy()
	img := image.NewGray16(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	buf := make([]uint16, w*h)
	gl.ReadPixels(int32(area.Min.X), int32(area.Min.Y), int32(w), int32(h),
		gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT, gl.Ptr(buf))
	for y := range h {
		row := buf[y*w : (y+1)*w]
		o := (h - 1 - y) * img.Stride
		for x, v := range row {
			// Gray16 stores big-endian samples.
			img.Pix[o+2*x] = uint8(v >> 8)
			img.Pix[o+2*x+1] = uint8(v)
		}
	}
	return img
}

func readObjectID(area Rect) image.Image {
	w, h := area.Dx(), area.Dy()
	img := image.NewRGBA64(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	buf := make([]uint16, w*h*2)
	gl.ReadPixels(int32(area.Min.X), int32(area.Min.Y), int32(w), int32(h),
		gl.RG_INTEGER, gl.UNSIGNED_SHORT, gl.Ptr(buf))
	for y := range h {
		o := (h - 1 - y) * img.Stride
		for x := range w {
			id := buf[(y*w+x)*2]
			index := buf[(y*w+x)*2+1]
			p := o + 8*x
			img.Pix[p] = uint8(id >> 8)
			img.Pix[p+1] = uint8(id)
			img.Pix[p+2] = uint8(index >> 8)
			img.Pix[p+3] = uint8(index)
			img.Pix[p+6] = 0xff
			img.Pix[p+7] = 0xff
		}
	}
	return img
}

// copyRowsFlipped copies rows of src into dst in reverse order. GL reads
// pixels bottom row first; images store the top row first.
func copyRowsFlipped(dst []uint8, dstStride int, src []uint8, srcStride, rows int) {
	for y := range rows {
		copy(dst[(rows-1-y)*dstStride:(rows-1-y)*dstStride+srcStride], src[y*srcStride:(y+1)*srcStride])
	}
}

// ScreenBuffer reads one channel of the tree's render target, cropped to
// this screen's current area. The default channel is "color".
func (s *Screen) ScreenBuffer(channel string) (image.Image, error) {
	if channel == "" {
		channel = "color"
	}
	if s.Context == nil {
		return nil, fmt.Errorf("screen has no native window")
	}
	return s.Context.fb.ReadChannel(channel, s.absoluteArea())
}

// ScreenBufferScaled is ScreenBuffer downsampled to the given size, for
// logical-resolution screenshots on high-DPI displays.
func (s *Screen) ScreenBufferScaled(channel string, size Size) (image.Image, error) {
	img, err := s.ScreenBuffer(channel)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Size() == size || size.X <= 0 || size.Y <= 0 {
		return img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Screenshot saves a channel of the screen as a PNG file. Empty arguments
// default to "screenshot.png" and the color channel.
func (s *Screen) Screenshot(path, channel string) error {
	if path == "" {
		path = "screenshot.png"
	}
	img, err := s.ScreenBuffer(channel)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
