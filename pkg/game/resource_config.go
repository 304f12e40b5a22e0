package game

// ResourceConfig 资源清单，对应 assets/config/resources.yaml
//
// 结构：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
	// Order 组的加载顺序，未列出的组按名字排在后面
	Order []string `yaml:"order,omitempty"`
}

// ResourceGroup 一起加载的一组资源
//
//	ui:
//	  images:
//	    - id: slider_bg
//	      path: images/ui/slider_bg
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource 单张图片。路径相对 base_path，省略扩展名时按 .png 处理
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// SoundResource 单个音效。省略扩展名时按 .ogg 处理
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// FontResource 字体文件（ttf/otf）
type FontResource struct {
	ID   string  `yaml:"id"`
	Path string  `yaml:"path"`
	Size float64 `yaml:"size,omitempty"`
}

// Count 组内资源总数
func (g ResourceGroup) Count() int {
	return len(g.Images) + len(g.Sounds) + len(g.Fonts)
}

// buildFullPath 拼接 base_path 和相对路径
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
