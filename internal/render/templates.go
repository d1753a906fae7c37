package render

// htmlTemplate is the FT-style HTML layout.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>
        * { box-sizing: border-box; }
        body {
            font-family: 'Georgia', 'Times New Roman', serif;
            max-width: 700px;
            margin: 0 auto;
            padding: 20px;
            background: #FFF9F5;
            color: #1a1a1a;
            line-height: 1.7;
            font-size: 17px;
        }
        .header {
            border-bottom: 3px double #1a1a1a;
            padding-bottom: 20px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 {
            font-size: 32px;
            font-weight: 700;
            margin: 0 0 5px 0;
            letter-spacing: -0.5px;
        }
        .header .tagline {
            font-style: italic;
            color: #666;
            font-size: 14px;
            margin-bottom: 10px;
        }
        .header .date {
            font-size: 13px;
            color: #888;
            text-transform: uppercase;
            letter-spacing: 1px;
        }
        .intro {
            font-size: 18px;
            font-style: italic;
            color: #444;
            border-left: 3px solid #c41e3a;
            padding-left: 20px;
            margin: 30px 0;
        }
        .section {
            margin-bottom: 40px;
        }
        .section-header {
            display: flex;
            align-items: center;
            border-bottom: 1px solid #ccc;
            padding-bottom: 10px;
            margin-bottom: 20px;
        }
        .section-header h2 {
            font-size: 22px;
            font-weight: 700;
            margin: 0;
            color: #1a1a1a;
        }
        .section-header .icon {
            font-size: 20px;
            margin-right: 10px;
        }
        .sub-theme {
            font-size: 16px;
            font-weight: 700;
            color: #c41e3a;
            text-transform: uppercase;
            letter-spacing: 1px;
            margin: 25px 0 15px 0;
            padding-bottom: 5px;
            border-bottom: 1px dotted #c41e3a;
        }
        .story {
            margin-bottom: 25px;
            padding-bottom: 25px;
            border-bottom: 1px dotted #ddd;
        }
        .story:last-child {
            border-bottom: none;
        }
        .story h3 {
            font-size: 19px;
            font-weight: 700;
            margin: 0 0 10px 0;
            line-height: 1.3;
        }
        .story .meta {
            font-size: 12px;
            color: #888;
            margin-bottom: 10px;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        .story .content {
            color: #333;
        }
        .story .source-link {
            font-size: 13px;
            color: #c41e3a;
            text-decoration: none;
        }
        .story .source-link:hover {
            text-decoration: underline;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #ccc;
            text-align: center;
            font-size: 12px;
            color: #888;
        }
        .no-stories {
            color: #888;
            font-style: italic;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{ .Title }}</h1>
        <div class="tagline">{{ .Tagline }}</div>
        <div class="date">{{ date .Date }}</div>
    </div>
{{ if .Intro }}
    <div class="intro">{{ .Intro }}</div>
{{ end }}
{{ range .Sections }}
    <div class="section">
        <div class="section-header">
            <span class="icon">{{ .Icon }}</span>
            <h2>{{ .Title }}</h2>
        </div>
{{ if .Stories }}{{ if .SubThemes }}{{ $section := . }}{{ range .SubThemes }}
        <div class="sub-theme">{{ . }}</div>
{{ range $section.StoriesFor . }}{{ template "story" . }}{{ end }}{{ end }}{{ else }}{{ range .Stories }}{{ template "story" . }}{{ end }}{{ end }}{{ else }}
        <p class="no-stories">No significant {{ lower .Title }} this period.</p>
{{ end }}    </div>
{{ end }}
    <div class="footer">{{ .Footer }}</div>
</body>
</html>
{{ define "story" }}        <div class="story">
            <h3>{{ .Headline }}</h3>
            <div class="meta">{{ .Source }}{{ if .Published }} • {{ .Published }}{{ end }}</div>
            <div class="content">{{ .Summary }}</div>
{{ if .Link }}            <a href="{{ .Link }}" class="source-link">Read source →</a>
{{ end }}        </div>
{{ end }}`

// markdownTemplate mirrors the HTML layout in plain Markdown.
const markdownTemplate = `# {{ .Title }}

*{{ .Tagline }}*

**{{ date .Date }}**

---
{{ if .Intro }}
> {{ .Intro }}

---
{{ end }}
{{ range .Sections }}
## {{ .Icon }} {{ .Title }}
{{ if .Stories }}{{ if .SubThemes }}{{ $section := . }}{{ range .SubThemes }}
### {{ . }}
{{ range $section.StoriesFor . }}{{ template "mdstory" . }}{{ end }}{{ end }}{{ else }}{{ range .Stories }}{{ template "mdstory" . }}{{ end }}{{ end }}{{ else }}
*No significant {{ lower .Title }} this period.*
{{ end }}{{ end }}
---

*{{ .Footer }}*
{{ define "mdstory" }}
### {{ .Headline }}

*{{ .Source }}{{ if .Published }} • {{ .Published }}{{ end }}*

{{ .Summary }}
{{ if .Link }}
[Read source →]({{ .Link }})
{{ end }}
---
{{ end }}`
