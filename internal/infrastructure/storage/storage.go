package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
)

// File - một file đã đọc vào memory, sẵn sàng upload
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Object - object đọc từ bucket dạng stream, caller phải Close Body
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Storage - asset store gateway, các domain service chỉ phụ thuộc interface này
type Storage interface {
	// Upload trả về key của object: {app}/{folder}/{uuid}_{filename}
	Upload(ctx context.Context, folder string, file File) (string, error)
	// UploadMany upload song song, nếu một file lỗi thì xoá các file đã lên
	UploadMany(ctx context.Context, folder string, files []File) ([]string, error)
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
	// DeleteByPrefix xoá toàn bộ folder, folder tính tương đối như Upload
	DeleteByPrefix(ctx context.Context, folder string) error
	List(ctx context.Context, folder string) ([]string, error)
	PresignGet(ctx context.Context, key string, opts PresignGetOptions) (string, error)
	// PresignPut trả về url để client upload trực tiếp cùng key sẽ được tạo
	PresignPut(ctx context.Context, folder, filename, contentType string) (url string, key string, err error)
}

// PresignGetOptions - download=true sẽ set Content-Disposition: attachment
type PresignGetOptions struct {
	Download bool
	Filename string
}

// FolderPath build prefix {app}/{folder}
func FolderPath(appName, folder string) string {
	return strings.TrimSuffix(path.Join(appName, strings.Trim(folder, "/")), "/")
}

// BuildKey build key {app}/{folder}/{uuid}_{filename}
func BuildKey(appName, folder, filename string) string {
	return path.Join(FolderPath(appName, folder), uuid.NewString()+"_"+sanitizeFilename(filename))
}

// BuildPresignedKey build key {app}/{folder}/{uuid}_pre_{filename}
func BuildPresignedKey(appName, folder, filename string) string {
	return path.Join(FolderPath(appName, folder), uuid.NewString()+"_pre_"+sanitizeFilename(filename))
}

// sanitizeFilename bỏ path component và khoảng trắng
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return strings.Join(strings.Fields(name), "_")
}

// AttachmentDisposition build Content-Disposition cho download
func AttachmentDisposition(key, filename string) string {
	if filename == "" {
		filename = path.Base(key)
	}
	return fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(filename, `"`, ""))
}

// ReadFileHeader đọc multipart file vào memory, tối đa maxBytes (<= 0: không giới hạn)
func ReadFileHeader(fh *multipart.FileHeader, maxBytes int64) (File, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return File{}, tooLarge(fh.Filename, maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	// fh.Size do client khai báo, check lại trên bytes thật
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return File{}, tooLarge(fh.Filename, maxBytes)
	}

	return File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
